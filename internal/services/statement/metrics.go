package statement

import (
	"crediwallet/internal/models"

	"github.com/shopspring/decimal"
)

// Metrics summarizes a chronological run of ledger entries.
type Metrics struct {
	InitialBalance decimal.Decimal `json:"initialBalance"`
	FinalBalance   decimal.Decimal `json:"finalBalance"`
	TotalDebit     decimal.Decimal `json:"totalDebit"`
	TotalCredit    decimal.Decimal `json:"totalCredit"`
}

// ComputeMetrics derives statement totals from entries ordered oldest
// first. The opening balance is reconstructed from the first entry by
// undoing its own movement; an empty slice yields all zeros.
func ComputeMetrics(entries []models.LedgerEntry) Metrics {
	m := Metrics{
		InitialBalance: decimal.Zero,
		FinalBalance:   decimal.Zero,
		TotalDebit:     decimal.Zero,
		TotalCredit:    decimal.Zero,
	}
	if len(entries) == 0 {
		return m
	}

	first := entries[0]
	m.InitialBalance = first.Balance.Sub(first.MoneyIn).Add(first.MoneyOut)
	m.FinalBalance = entries[len(entries)-1].Balance

	for _, e := range entries {
		m.TotalDebit = m.TotalDebit.Add(e.MoneyOut)
		m.TotalCredit = m.TotalCredit.Add(e.MoneyIn)
	}
	return m
}
