package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/jcvalerio/moneywiz-mcp-server/internal/catalog"
	apperrors "github.com/jcvalerio/moneywiz-mcp-server/internal/errors"
	"github.com/jcvalerio/moneywiz-mcp-server/internal/models"
	"github.com/jcvalerio/moneywiz-mcp-server/internal/resolve"
	"github.com/jcvalerio/moneywiz-mcp-server/internal/store"
)

type AccountServiceSuite struct {
	suite.Suite
	store   *store.Store
	seed    *gorm.DB
	service AccountServiceInterface
	ctx     context.Context
}

func (s *AccountServiceSuite) SetupTest() {
	s.store, s.seed = store.SetupTestStore(s.T())
	s.service = NewAccountService(s.store, resolve.New(s.store, resolve.NewSession()))
	s.ctx = context.Background()
}

func TestAccountServiceSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceSuite))
}

func (s *AccountServiceSuite) TestListAccounts_ExcludesHiddenByDefault() {
	store.InsertAccount(s.T(), s.seed, 10, 1, "Checking", "USD", 100, false)
	store.InsertAccount(s.T(), s.seed, 11, 2, "Old Savings", "USD", 5000, true)

	list, err := s.service.ListAccounts(s.ctx, models.AccountListOptions{})
	s.Require().NoError(err)

	s.Equal(1, list.TotalCount)
	s.Equal("Checking", list.Accounts[0].Name)
}

func (s *AccountServiceSuite) TestListAccounts_IncludeHidden() {
	store.InsertAccount(s.T(), s.seed, 10, 1, "Checking", "USD", 100, false)
	store.InsertAccount(s.T(), s.seed, 11, 2, "Old Savings", "USD", 5000, true)

	list, err := s.service.ListAccounts(s.ctx, models.AccountListOptions{IncludeHidden: true})
	s.Require().NoError(err)

	s.Equal(2, list.TotalCount)
	s.True(list.Accounts[1].Hidden)
}

func (s *AccountServiceSuite) TestListAccounts_SubtypeFilter() {
	store.InsertAccount(s.T(), s.seed, 10, 1, "Checking", "USD", 0, false)
	store.InsertAccount(s.T(), s.seed, 13, 2, "Visa", "USD", 0, false)

	list, err := s.service.ListAccounts(s.ctx, models.AccountListOptions{Subtype: catalog.AccountCreditCard})
	s.Require().NoError(err)

	s.Equal(1, list.TotalCount)
	s.Equal("Visa", list.Accounts[0].Name)
}

func (s *AccountServiceSuite) TestListAccounts_UnknownSubtype() {
	_, err := s.service.ListAccounts(s.ctx, models.AccountListOptions{Subtype: "offshore"})
	s.Require().Error(err)
	s.ErrorIs(err, ErrUnknownAccountSubtype)
	s.True(apperrors.IsCode(err, apperrors.AccountUnknownSubtype),
		"the subtype rejection carries its dedicated code")
}

func (s *AccountServiceSuite) TestListAccounts_NamelessAccountGetsPlaceholder() {
	store.InsertObject(s.T(), s.seed, map[string]any{
		"Z_PK": 1, "Z_ENT": 10, "ZCURRENCYNAME": "USD",
	})

	list, err := s.service.ListAccounts(s.ctx, models.AccountListOptions{})
	s.Require().NoError(err)
	s.Require().Equal(1, list.TotalCount)
	s.Equal("Unnamed Account", list.Accounts[0].Name)
}

func (s *AccountServiceSuite) TestGetAccount_BalanceFromOpeningPlusCoreLegs() {
	store.InsertAccount(s.T(), s.seed, 10, 1, "Checking", "USD", 1000, false)
	day := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	store.InsertTransaction(s.T(), s.seed, 47, 10, 1, -50, day, "", 0)
	store.InsertTransaction(s.T(), s.seed, 47, 11, 1, -25.50, day, "", 0)
	store.InsertTransaction(s.T(), s.seed, 37, 12, 1, 200, day, "", 0)
	// Investment buys never post against the balance
	store.InsertTransaction(s.T(), s.seed, 40, 13, 1, -500, day, "", 0)

	account, err := s.service.GetAccount(s.ctx, 1)
	s.Require().NoError(err)

	s.Equal("1124.5", account.Balance.String())
	s.Empty(account.DataQualityNotes)
}

func (s *AccountServiceSuite) TestGetAccount_TransferLegsPost() {
	store.InsertAccount(s.T(), s.seed, 10, 1, "Checking", "USD", 100, false)
	store.InsertAccount(s.T(), s.seed, 11, 2, "Savings", "USD", 0, false)
	day := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	store.InsertTransaction(s.T(), s.seed, 46, 10, 1, -40, day, "to savings", 0)
	store.InsertTransaction(s.T(), s.seed, 45, 11, 2, 40, day, "from checking", 0)

	checking, err := s.service.GetAccount(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal("60", checking.Balance.String())

	savings, err := s.service.GetAccount(s.ctx, 2)
	s.Require().NoError(err)
	s.Equal("40", savings.Balance.String())
}

func (s *AccountServiceSuite) TestGetAccount_MixedCurrencyNote() {
	store.InsertAccount(s.T(), s.seed, 10, 1, "Checking", "USD", 0, false)
	day := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	store.InsertObject(s.T(), s.seed, map[string]any{
		"Z_PK":              10,
		"Z_ENT":             47,
		"ZACCOUNT2":         1,
		"ZAMOUNT1":          -90.0,
		"ZDATE1":            models.TimeToCoreData(day),
		"ZORIGINALCURRENCY": "GBP",
		"ZORIGINALAMOUNT":   -70.0,
	})

	account, err := s.service.GetAccount(s.ctx, 1)
	s.Require().NoError(err)

	s.Equal("-90", account.Balance.String())
	s.Require().Len(account.DataQualityNotes, 1)
	s.Contains(account.DataQualityNotes[0], "currency other than USD")
}

func (s *AccountServiceSuite) TestGetAccount_NotFound() {
	_, err := s.service.GetAccount(s.ctx, 404)
	s.Require().Error(err)
	s.True(apperrors.IsCode(err, apperrors.AccountNotFound))
}
