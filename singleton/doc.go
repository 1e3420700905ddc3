// Package singleton provides interchangeable lazy-initialization strategies
// for a value that must exist at most once.
//
// Every strategy implements Provider[T]. They differ only in how the first
// construction is guarded:
//
//   - Unsynchronized: check-then-create with no exclusion. Concurrent first
//     access may construct and publish more than one value. Kept as a
//     negative example.
//   - Synchronized: a mutex is held for the whole check-then-create on every
//     call, including after initialization.
//   - DoubleChecked: an atomic load on the fast path; on a miss the mutex is
//     taken, the pointer is checked again and the value is published with an
//     atomic store.
//   - Deferred: the same guarantee as DoubleChecked, with the locked re-check
//     moved into a separate syncInit helper.
//   - Holder: construction is delegated to sync.OnceValue.
//   - Enumerated: the value is built when the provider is created and the
//     provider serializes to a fixed token, so decoding keeps the instance.
//   - Eager: the value is built when the provider is created.
//
// None of the strategies make the constructed value itself safe for
// concurrent use. A provider of *account.Account hands every caller the same
// pointer, and callers still race on Deposit and Withdraw.
//
// The package also owns one process-wide *account.Account per strategy,
// reachable through GetUnsynchronized, GetSynchronized, GetDoubleChecked,
// GetDeferred, GetHolder, GetEnumerated and GetEager. Composing code that
// prefers an explicit instance builds its own provider with New.
package singleton
