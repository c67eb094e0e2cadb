package index

// RecordIndex defines the interface for record index operations.
// Consumers should depend on this interface rather than the concrete *DB type
// to facilitate testing with mocks.
type RecordIndex interface {
	UpsertRecord(r RecordRow, aliases []string) error
	DeleteByPath(path string) error
	GetRecord(name string) (*RecordRow, error)
	NameForPath(path string) (string, error)
	ResolveAlias(name string) (string, error)
	ListRecords() ([]string, error)
	AllChecksums() (map[string]string, error)
	Close() error
}

// Verify *DB satisfies RecordIndex at compile time.
var _ RecordIndex = (*DB)(nil)
