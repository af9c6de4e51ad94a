/*
Package transfer implements the money movement engine.

Every operation (fund, withdraw, transfer) runs as one atomic unit: the
engine opens a unit of work, loads the affected accounts with row-level
locks, validates, mutates both balances and appends the ledger entries,
then commits. Any failed step rolls the whole unit back; no partial state
is ever observable.

A transfer writes a matched pair of ledger entries, a transfer-typed debit
for the sender and a fund-typed credit for the recipient. When two accounts
are involved their rows are always locked in ascending id order, so two
opposing transfers between the same pair cannot deadlock.

Notifications go out after commit, asynchronously. A notifier failure
never affects the committed operation.
*/
package transfer
