// Package stress measures how singleton strategies and account ledgers
// behave under concurrent access.
//
// FirstAccess releases a group of goroutines through a start barrier at a
// fresh provider, over many trials, and reports how many distinct instances
// were observed. Mutate hammers one ledger with concurrent deposits and
// reports how much balance went missing.
package stress
