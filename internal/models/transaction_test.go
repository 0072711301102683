package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jcvalerio/moneywiz-mcp-server/internal/catalog"
)

func TestTransactionClassification(t *testing.T) {
	tests := []struct {
		name    string
		subtype string
		amount  string
		expense bool
		income  bool
	}{
		{"withdrawal is an expense", catalog.TransactionWithdraw, "-42.50", true, false},
		{"deposit is income", catalog.TransactionDeposit, "1500.00", false, true},
		{"refund posts positive", catalog.TransactionRefund, "19.99", false, true},
		{"outgoing transfer leg is neither", catalog.TransactionTransferWithdraw, "-300.00", false, false},
		{"incoming transfer leg is neither", catalog.TransactionTransferDeposit, "300.00", false, false},
		{"zero amount is neither", catalog.TransactionDeposit, "0", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := Transaction{
				Subtype: tt.subtype,
				Amount:  decimal.RequireFromString(tt.amount),
			}
			assert.Equal(t, tt.expense, tx.IsExpense(), "IsExpense")
			assert.Equal(t, tt.income, tx.IsIncome(), "IsIncome")
		})
	}
}

func TestIsTransfer(t *testing.T) {
	transfer := Transaction{Subtype: catalog.TransactionTransferDeposit}
	assert.True(t, transfer.IsTransfer())

	deposit := Transaction{Subtype: catalog.TransactionDeposit}
	assert.False(t, deposit.IsTransfer())
}
