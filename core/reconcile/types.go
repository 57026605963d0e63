package reconcile

// Record is a normalized upstream record ready to be applied to the local
// store. Provider features adapt their models to this interface.
type Record interface {
	// RecordID is the provider's stable id for the record. Upserts are keyed
	// on this value alone.
	RecordID() string
	// SourceDeleted reports whether the upstream source deleted the record.
	SourceDeleted() bool
	// Entity returns a pointer to the GORM model persisted on insert.
	Entity() any
	// Assignments returns the mutable display fields overwritten when the
	// record already exists.
	Assignments() map[string]any
}

// Summary counts the outcome of one reconciliation batch.
type Summary struct {
	// Applied is the number of records upserted (created or updated).
	Applied int
	// Deleted is the number of soft-delete markers processed.
	Deleted int
	// Failed is the number of records that could not be persisted.
	Failed int
}

// Add merges another summary into this one.
func (s *Summary) Add(other Summary) {
	s.Applied += other.Applied
	s.Deleted += other.Deleted
	s.Failed += other.Failed
}
