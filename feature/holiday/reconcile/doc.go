// Package reconcile computes insert/update/delete partitions between the
// externally fetched holiday set and the persisted set of one country and
// year.
//
// The engine is a pure function over two keyed snapshots: it performs no
// I/O, holds no state and is safe to call from any number of sync workers
// concurrently. Keys are (date, name) pairs — the natural identity of a
// holiday in a source that exposes no identifiers.
//
// # Partition guarantee
//
// For any pair of inputs the three output sets partition the key union
// exactly: keys only in the fetched set become inserts, keys only in the
// persisted set become deletes, and keys present on both sides become
// updates when any mutable field differs (and nothing otherwise). An empty
// fetched set therefore deletes everything persisted — intentional
// full-replacement semantics, which is why the retry wrapper must never
// degrade a failed fetch into an empty list.
package reconcile
