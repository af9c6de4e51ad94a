package statement

import (
	"os"
	"testing"
	"time"

	"crediwallet/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeMetrics_Empty(t *testing.T) {
	m := ComputeMetrics(nil)
	assert.True(t, m.InitialBalance.IsZero())
	assert.True(t, m.FinalBalance.IsZero())
	assert.True(t, m.TotalDebit.IsZero())
	assert.True(t, m.TotalCredit.IsZero())
}

func TestComputeMetrics(t *testing.T) {
	// Account opens at 50, funds 100, transfers out 30, withdraws 20.
	entries := []models.LedgerEntry{
		{Type: models.EntryTypeFund, MoneyIn: dec("100"), MoneyOut: dec("0"), Balance: dec("150")},
		{Type: models.EntryTypeTransfer, MoneyIn: dec("0"), MoneyOut: dec("30"), Balance: dec("120")},
		{Type: models.EntryTypeWithdraw, MoneyIn: dec("0"), MoneyOut: dec("20"), Balance: dec("100")},
	}

	m := ComputeMetrics(entries)
	assert.True(t, m.InitialBalance.Equal(dec("50")), "initial = %s", m.InitialBalance)
	assert.True(t, m.FinalBalance.Equal(dec("100")))
	assert.True(t, m.TotalDebit.Equal(dec("50")))
	assert.True(t, m.TotalCredit.Equal(dec("100")))
}

func TestComputeMetrics_SingleEntry(t *testing.T) {
	entries := []models.LedgerEntry{
		{Type: models.EntryTypeWithdraw, MoneyIn: dec("0"), MoneyOut: dec("25.50"), Balance: dec("74.50")},
	}

	m := ComputeMetrics(entries)
	assert.True(t, m.InitialBalance.Equal(dec("100")))
	assert.True(t, m.FinalBalance.Equal(dec("74.50")))
	assert.True(t, m.TotalDebit.Equal(dec("25.50")))
	assert.True(t, m.TotalCredit.IsZero())
}

func TestTextGenerator(t *testing.T) {
	gen, err := NewTextGenerator(t.TempDir())
	require.NoError(t, err)

	st := &Statement{
		User: &models.User{ID: 7, Name: "Alice", AccountNumber: "1000000001"},
		From: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		Entries: []models.LedgerEntry{
			{
				Type: models.EntryTypeFund, MoneyIn: dec("100"), MoneyOut: dec("0"),
				Balance: dec("100"), Description: "Wallet funding",
				CreatedAt: time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC),
			},
		},
	}
	st.Metrics = ComputeMetrics(st.Entries)

	path, err := gen.Generate(st)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	data := string(raw)
	assert.Contains(t, data, "Alice")
	assert.Contains(t, data, "1000000001")
	assert.Contains(t, data, "2026-01-01 to 2026-01-31")
	assert.Contains(t, data, "Wallet funding")
	assert.Contains(t, data, "Closing balance: 100.00")

	// A second render of the same statement lands in a distinct file.
	other, err := gen.Generate(st)
	require.NoError(t, err)
	assert.NotEqual(t, path, other)
}
