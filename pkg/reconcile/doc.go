// Package reconcile decides which declared fields of a resource have to be
// pushed to Uptime Kuma.
//
// A reconciliation compares a desired State (only the fields a user declared)
// with an observed State (the record as the server returns it). Diff walks the
// desired fields in declaration order and reports every field whose observed
// value differs, honoring an IgnorePolicy for fields whose server-side default
// is equivalent to "not set". Fields that exist only on the observed side are
// never inspected, so server managed values such as ids or timestamps never
// show up as drift.
//
// Diff is pure: it performs no I/O, never mutates its inputs and may be called
// concurrently on independent inputs.
package reconcile
