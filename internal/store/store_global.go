package store

import (
	"fmt"
	"sync"

	"github.com/lesiontrack/lesiontrack/internal/contract"
	"github.com/lesiontrack/lesiontrack/schema"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// Global Manager instance for main logic.
var (
	Manager   = &RecordStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// RecordStoreManager manages the RecordStore instance.
type RecordStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	records      contract.RecordStore
}

var _ contract.StoreManager = &RecordStoreManager{} // Compile-time check

// GetRecordStore returns the record store.
func (mgr *RecordStoreManager) GetRecordStore() contract.RecordStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.records
}

// InitStore initializes the global store manager.
// This function body runs exactly once, even with concurrent calls.
func InitStore(backend schema.DatabaseBackend, connStr string) error {
	var initErr error

	initOnce.Do(func() {
		recordStore, err := NewRecordStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize record store: %w", err)
			return
		}

		Manager.Lock()
		defer Manager.Unlock()
		Manager.records = recordStore
	})

	// After once.Do, initErr will contain any error from the initialization block.
	return initErr
}

// CloseStore should be called on application shutdown.
func CloseStore() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.records != nil {
			_ = Manager.records.Close()
		}
	})
}
