package resolve

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/jcvalerio/moneywiz-mcp-server/internal/catalog"
	apperrors "github.com/jcvalerio/moneywiz-mcp-server/internal/errors"
	"github.com/jcvalerio/moneywiz-mcp-server/internal/store"
	"gorm.io/gorm"
)

type ResolverSuite struct {
	suite.Suite
	store    *store.Store
	seed     *gorm.DB
	resolver *Resolver
	ctx      context.Context
}

func (s *ResolverSuite) SetupTest() {
	s.store, s.seed = store.SetupTestStore(s.T())
	s.resolver = New(s.store, NewSession())
	s.ctx = context.Background()
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverSuite))
}

func (s *ResolverSuite) insertTransaction(pk int64) {
	store.InsertAccount(s.T(), s.seed, 10, 1, "Checking", "USD", 0, false)
	store.InsertTransaction(s.T(), s.seed, 47, pk, 1, -10,
		time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), "", 0)
}

func (s *ResolverSuite) TestCategory_Assigned() {
	s.insertTransaction(100)
	store.InsertCategory(s.T(), s.seed, 20, "Groceries", 0)
	store.AssignCategory(s.T(), s.seed, 500, 100, 20)

	name, id, err := s.resolver.Category(s.ctx, 100)
	s.Require().NoError(err)
	s.Equal("Groceries", name)
	s.Equal(int64(20), id)
}

func (s *ResolverSuite) TestCategory_NoAssignment() {
	s.insertTransaction(100)

	name, id, err := s.resolver.Category(s.ctx, 100)
	s.Require().NoError(err)
	s.Equal(Uncategorized, name)
	s.Zero(id)
}

func (s *ResolverSuite) TestCategory_DanglingAssignment() {
	s.insertTransaction(100)
	store.AssignCategory(s.T(), s.seed, 500, 100, 999)

	name, id, err := s.resolver.Category(s.ctx, 100)
	s.Require().NoError(err)
	s.Equal(Uncategorized, name)
	s.Zero(id)
}

func (s *ResolverSuite) TestCategory_AssignmentToWrongKind() {
	s.insertTransaction(100)
	store.InsertPayee(s.T(), s.seed, 30, "Amazon")
	// Assignment points at a payee row, not a category
	store.AssignCategory(s.T(), s.seed, 500, 100, 30)

	name, id, err := s.resolver.Category(s.ctx, 100)
	s.Require().NoError(err)
	s.Equal(Uncategorized, name)
	s.Zero(id)
}

func (s *ResolverSuite) TestCategoryPath_Hierarchy() {
	store.InsertCategory(s.T(), s.seed, 20, "Food", 0)
	store.InsertCategory(s.T(), s.seed, 21, "Groceries", 20)

	path, err := s.resolver.CategoryPath(s.ctx, 21)
	s.Require().NoError(err)
	s.Equal("Food ▶ Groceries", path)
}

func (s *ResolverSuite) TestCategoryPath_TopLevel() {
	store.InsertCategory(s.T(), s.seed, 20, "Rent", 0)

	path, err := s.resolver.CategoryPath(s.ctx, 20)
	s.Require().NoError(err)
	s.Equal("Rent", path)
}

func (s *ResolverSuite) TestCategoryPath_CycleTerminates() {
	// Corrupt parent chain: 20 -> 21 -> 20
	store.InsertObject(s.T(), s.seed, map[string]any{
		"Z_PK": 20, "Z_ENT": 19, "ZNAME2": "A", "ZPARENTCATEGORY": 21,
	})
	store.InsertObject(s.T(), s.seed, map[string]any{
		"Z_PK": 21, "Z_ENT": 19, "ZNAME2": "B", "ZPARENTCATEGORY": 20,
	})

	path, err := s.resolver.CategoryPath(s.ctx, 20)
	s.Require().NoError(err)
	s.Equal("B ▶ A", path)
}

func (s *ResolverSuite) TestPayee_Resolved() {
	store.InsertPayee(s.T(), s.seed, 30, "Whole Foods")

	name, err := s.resolver.Payee(s.ctx, 30)
	s.Require().NoError(err)
	s.Equal("Whole Foods", name)
}

func (s *ResolverSuite) TestPayee_ZeroAndMissing() {
	name, err := s.resolver.Payee(s.ctx, 0)
	s.Require().NoError(err)
	s.Empty(name)

	name, err = s.resolver.Payee(s.ctx, 404)
	s.Require().NoError(err)
	s.Empty(name, "a dangling payee id degrades to empty, not an error")
}

func (s *ResolverSuite) TestAccount_Resolved() {
	store.InsertAccount(s.T(), s.seed, 13, 5, "Visa Gold", "EUR", -250, false)

	account, err := s.resolver.Account(s.ctx, 5)
	s.Require().NoError(err)
	s.Equal("Visa Gold", account.Name)
	s.Equal(catalog.AccountCreditCard, account.Subtype)
	s.Equal("EUR", account.Currency)
	s.Equal("-250", account.OpeningBalance.String())
	s.NotEmpty(account.ExternalID)
	s.NotEmpty(account.LastFourDigits)
}

func (s *ResolverSuite) TestAccount_Missing() {
	_, err := s.resolver.Account(s.ctx, 404)
	s.Require().Error(err)
	s.True(apperrors.IsCode(err, apperrors.AccountNotFound))
}

func (s *ResolverSuite) TestAccount_WrongKind() {
	store.InsertCategory(s.T(), s.seed, 20, "Food", 0)

	_, err := s.resolver.Account(s.ctx, 20)
	s.Require().Error(err)
	s.True(apperrors.IsCode(err, apperrors.AccountNotFound))
}

func (s *ResolverSuite) TestMemoization_WithinSession() {
	store.InsertCategory(s.T(), s.seed, 20, "Original", 0)
	s.insertTransaction(100)
	store.AssignCategory(s.T(), s.seed, 500, 100, 20)

	name, _, err := s.resolver.Category(s.ctx, 100)
	s.Require().NoError(err)
	s.Equal("Original", name)

	// Rename underneath the session; the memoized value must win
	s.Require().NoError(s.seed.Exec("UPDATE ZSYNCOBJECT SET ZNAME2 = 'Renamed' WHERE Z_PK = 20").Error)

	name, _, err = s.resolver.Category(s.ctx, 100)
	s.Require().NoError(err)
	s.Equal("Original", name)

	// A fresh session sees the new value
	fresh := New(s.store, NewSession())
	name, _, err = fresh.Category(s.ctx, 100)
	s.Require().NoError(err)
	s.Equal("Renamed", name)
}

func (s *ResolverSuite) TestAccountFromRow_Fallbacks() {
	entry, ok := catalog.Classify(10)
	s.Require().True(ok)

	account, err := AccountFromRow(store.Row{"Z_PK": int64(9), "Z_ENT": int64(10)}, entry)
	s.Require().NoError(err)
	s.Equal("Unnamed Account", account.Name)
	s.Equal("USD", account.Currency)
	s.True(account.OpeningBalance.IsZero())

	_, err = AccountFromRow(store.Row{"Z_ENT": int64(10)}, entry)
	s.Require().Error(err)
	s.True(apperrors.IsCode(err, apperrors.StoreMalformedRecord))
}
