// Package reconcile applies batches of externally-sourced record changes to
// the local database.
//
// The Engine consumes normalized records produced by the provider mappers.
// Each record is applied independently, keyed by the provider's own stable
// record id:
//
//   - a record the source marked deleted is soft-deleted: deleted_at is
//     stamped, the row is never physically removed. Re-applying the delete
//     is a state-level no-op.
//   - any other record is upserted: inserted with created_at on first sight,
//     otherwise its mutable display fields and updated_at are overwritten.
//     Applying the same record twice yields the same end state.
//
// # Failure handling
//
// Reconciliation is best effort. A record that fails to persist is logged and
// counted; it never aborts the rest of the batch. Callers read the Summary to
// decide whether to surface partial failures to observability.
//
// # Concurrency
//
// The Engine holds no state between calls. Two concurrent batches for the
// same connection may interleave; correctness relies on each record's write
// being atomic at the storage layer and idempotent, not on ordering.
package reconcile
