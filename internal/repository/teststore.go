package repository

import "testing"

// NewTestStore creates a fresh in-memory entity store with the schema applied.
func NewTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}

	t.Cleanup(func() { store.Close() })

	return store
}

// NewTestAudit creates a fresh in-memory audit repository.
func NewTestAudit(t *testing.T) *SQLiteAuditRepository {
	t.Helper()

	audit, err := NewSQLiteAuditRepository(":memory:")
	if err != nil {
		t.Fatalf("opening test audit repository: %v", err)
	}

	t.Cleanup(func() { audit.Close() })

	return audit
}
