// Package catalog is the static mapping between Core Data entity codes and
// domain kinds. Every row in the MoneyWiz object table carries a Z_ENT tag;
// this package is the single place that knows which tags mean account,
// transaction, category or payee, and which columns hold each kind's
// attributes. Adding a new subtype means adding a catalog entry here, not
// touching resolvers or the assembler.
package catalog

import (
	"errors"
	"fmt"
	"sort"
)

// Kind classifies what an object-table row represents in domain terms
type Kind int

const (
	KindUnknown Kind = iota
	KindAccount
	KindTransaction
	KindCategory
	KindPayee
)

func (k Kind) String() string {
	switch k {
	case KindAccount:
		return "account"
	case KindTransaction:
		return "transaction"
	case KindCategory:
		return "category"
	case KindPayee:
		return "payee"
	default:
		return "unknown"
	}
}

// Account subtype labels
const (
	AccountChecking   = "checking"
	AccountSavings    = "savings"
	AccountCash       = "cash"
	AccountCreditCard = "credit_card"
	AccountLoan       = "loan"
	AccountInvestment = "investment"
	AccountForex      = "forex"
)

// Transaction subtype labels
const (
	TransactionDeposit          = "deposit"
	TransactionTransferDeposit  = "transfer_deposit"
	TransactionTransferWithdraw = "transfer_withdraw"
	TransactionWithdraw         = "withdraw"
	TransactionExchange         = "investment_exchange"
	TransactionBuy              = "investment_buy"
	TransactionSell             = "investment_sell"
	TransactionReconcile        = "reconcile"
	TransactionRefund           = "refund"
	TransactionBudgetTransfer   = "budget_transfer"
)

// Entity codes. Accounts occupy a contiguous range; transactions are an
// enumerated set that is not contiguous (39 is unrelated).
const (
	entAccountFirst = 10
	entAccountLast  = 16

	EntCategory = 19
	EntPayee    = 28

	entDeposit          = 37
	entExchange         = 38
	entBuy              = 40
	entSell             = 41
	entReconcile        = 42
	entRefund           = 43
	entBudgetTransfer   = 44
	entTransferDeposit  = 45
	entTransferWithdraw = 46
	entWithdraw         = 47
)

// ErrUnknownSubtype is returned when a subtype label has no entity code
var ErrUnknownSubtype = errors.New("unknown transaction subtype")

// Entry describes how rows carrying one entity code map into the domain.
// Attr maps logical attribute names to the object-table columns that hold
// them for this particular subtype.
type Entry struct {
	Ent     int
	Kind    Kind
	Subtype string
	Attr    map[string]string
}

// Logical attribute names used in Attr maps
const (
	AttrName           = "name"
	AttrCurrency       = "currency"
	AttrOpeningBalance = "opening_balance"
	AttrHidden         = "hidden"
	AttrInstitution    = "institution"
	AttrLastFour       = "last_four"
	AttrAmount         = "amount"
	AttrAccount        = "account"
	AttrDate           = "date"
	AttrDescription    = "description"
	AttrNotes          = "notes"
	AttrPayee          = "payee"
	AttrReconciled     = "reconciled"
	AttrOrigAmount     = "original_amount"
	AttrOrigCurrency   = "original_currency"
	AttrParentCategory = "parent_category"
	AttrExternalID     = "external_id"
)

// accountAttrs returns the column map for one account subtype. The current
// schema shares column names across all seven subtypes, but callers must go
// through the per-subtype map: the source convention does not guarantee the
// sharing, only the catalog does.
func accountAttrs() map[string]string {
	return map[string]string{
		AttrName:           "ZNAME",
		AttrCurrency:       "ZCURRENCYNAME",
		AttrOpeningBalance: "ZOPENINGBALANCE",
		AttrHidden:         "ZARCHIVED",
		AttrInstitution:    "ZINSTITUTIONNAME",
		AttrLastFour:       "ZLASTFOURDIGITS",
		AttrExternalID:     "ZGID",
	}
}

// transactionAttrs returns the column map for one transaction subtype.
// AttrAmount deliberately points at the account-linked leg (ZAMOUNT1 paired
// with ZACCOUNT2). Transfer subtypes carry a second leg under other columns;
// reading those for "amount" silently corrupts every downstream sum.
func transactionAttrs() map[string]string {
	return map[string]string{
		AttrAmount:       "ZAMOUNT1",
		AttrAccount:      "ZACCOUNT2",
		AttrDate:         "ZDATE1",
		AttrDescription:  "ZDESC2",
		AttrNotes:        "ZNOTES1",
		AttrPayee:        "ZPAYEE2",
		AttrReconciled:   "ZRECONCILED",
		AttrOrigAmount:   "ZORIGINALAMOUNT",
		AttrOrigCurrency: "ZORIGINALCURRENCY",
		AttrExternalID:   "ZGID",
	}
}

var entries = buildEntries()

func buildEntries() map[int]Entry {
	m := make(map[int]Entry)

	accountSubtypes := []string{
		AccountChecking, AccountSavings, AccountCash, AccountCreditCard,
		AccountLoan, AccountInvestment, AccountForex,
	}
	for i, subtype := range accountSubtypes {
		ent := entAccountFirst + i
		m[ent] = Entry{Ent: ent, Kind: KindAccount, Subtype: subtype, Attr: accountAttrs()}
	}

	transactionEnts := map[int]string{
		entDeposit:          TransactionDeposit,
		entTransferDeposit:  TransactionTransferDeposit,
		entTransferWithdraw: TransactionTransferWithdraw,
		entWithdraw:         TransactionWithdraw,
		entExchange:         TransactionExchange,
		entBuy:              TransactionBuy,
		entSell:             TransactionSell,
		entReconcile:        TransactionReconcile,
		entRefund:           TransactionRefund,
		entBudgetTransfer:   TransactionBudgetTransfer,
	}
	for ent, subtype := range transactionEnts {
		m[ent] = Entry{Ent: ent, Kind: KindTransaction, Subtype: subtype, Attr: transactionAttrs()}
	}

	m[EntCategory] = Entry{
		Ent:  EntCategory,
		Kind: KindCategory,
		Attr: map[string]string{
			AttrName:           "ZNAME2",
			AttrParentCategory: "ZPARENTCATEGORY",
			AttrExternalID:     "ZGID",
		},
	}
	m[EntPayee] = Entry{
		Ent:  EntPayee,
		Kind: KindPayee,
		Attr: map[string]string{
			AttrName:       "ZNAME",
			AttrExternalID: "ZGID",
		},
	}

	return m
}

// Classify maps an entity code to its catalog entry. Unknown codes return
// ok=false and are excluded from results rather than raising.
func Classify(ent int) (Entry, bool) {
	entry, ok := entries[ent]
	return entry, ok
}

// IsAccountEntity reports whether ent falls inside the contiguous account range
func IsAccountEntity(ent int) bool {
	return ent >= entAccountFirst && ent <= entAccountLast
}

// IsTransactionEntity reports whether ent belongs to the transaction set
func IsTransactionEntity(ent int) bool {
	entry, ok := entries[ent]
	return ok && entry.Kind == KindTransaction
}

// AccountEntityIDs returns the entity codes for all account subtypes in
// ascending order
func AccountEntityIDs() []int {
	ids := make([]int, 0, entAccountLast-entAccountFirst+1)
	for ent := entAccountFirst; ent <= entAccountLast; ent++ {
		ids = append(ids, ent)
	}
	return ids
}

// CoreTransactionEntityIDs returns the four entity codes that post against
// account balances. Secondary (investment and budgeting) subtypes are
// excluded: the balance formula matches what the source application shows.
func CoreTransactionEntityIDs() []int {
	return []int{entDeposit, entTransferDeposit, entTransferWithdraw, entWithdraw}
}

// AllTransactionEntityIDs returns every known transaction entity code in
// ascending order
func AllTransactionEntityIDs() []int {
	ids := make([]int, 0, 10)
	for ent, entry := range entries {
		if entry.Kind == KindTransaction {
			ids = append(ids, ent)
		}
	}
	sort.Ints(ids)
	return ids
}

// TransactionEntityIDs resolves subtype labels to entity codes. An empty
// list means all known subtypes. Unknown labels fail with ErrUnknownSubtype.
func TransactionEntityIDs(subtypes []string) ([]int, error) {
	if len(subtypes) == 0 {
		return AllTransactionEntityIDs(), nil
	}

	bySubtype := make(map[string]int)
	for ent, entry := range entries {
		if entry.Kind == KindTransaction {
			bySubtype[entry.Subtype] = ent
		}
	}

	ids := make([]int, 0, len(subtypes))
	for _, subtype := range subtypes {
		ent, ok := bySubtype[subtype]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSubtype, subtype)
		}
		ids = append(ids, ent)
	}
	sort.Ints(ids)
	return ids, nil
}

// AccountSubtypes returns the valid account subtype labels
func AccountSubtypes() []string {
	return []string{
		AccountChecking, AccountSavings, AccountCash, AccountCreditCard,
		AccountLoan, AccountInvestment, AccountForex,
	}
}

// TransactionSubtypes returns the valid transaction subtype labels
func TransactionSubtypes() []string {
	labels := make([]string, 0, 10)
	for _, ent := range AllTransactionEntityIDs() {
		labels = append(labels, entries[ent].Subtype)
	}
	return labels
}

// IsTransferSubtype reports whether a subtype moves money between two owned
// accounts rather than in or out of the books
func IsTransferSubtype(subtype string) bool {
	return subtype == TransactionTransferDeposit || subtype == TransactionTransferWithdraw
}
