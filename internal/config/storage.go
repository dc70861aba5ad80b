package config

import (
	"os"
	"sync"
)

// StorageConfig selects the persistence variant at composition time:
// "sqlite" keeps whole-collection blobs in a local file, "postgres"
// keeps one document per record and serves multiple clients.
type StorageConfig struct {
	Driver     string
	SQLitePath string
}

var (
	storageConfig *StorageConfig
	storageOnce   sync.Once
)

func LoadStorageConfig() *StorageConfig {
	storageOnce.Do(func() {
		driver := os.Getenv("STORAGE_DRIVER")
		if driver == "" {
			driver = "sqlite"
		}
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = "idealmente.db"
		}
		storageConfig = &StorageConfig{
			Driver:     driver,
			SQLitePath: path,
		}
	})
	return storageConfig
}
