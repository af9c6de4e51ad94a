// Package statement builds account statements from ledger history. It
// aggregates entries over a date range into opening/closing balances and
// debit/credit totals, and can render the result to a downloadable file
// through a pluggable generator.
package statement
