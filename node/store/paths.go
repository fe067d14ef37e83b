package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// StoreDir returns the on-disk directory for witness sets under datadir:
//
//	datadir/witness-sets/
func StoreDir(datadir string) string {
	return filepath.Join(datadir, "witness-sets")
}

func dbPath(storeDir string) string {
	return filepath.Join(storeDir, "db", "kv.db")
}

func ensureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", path, err)
	}
	return nil
}
