package storage

import (
	"fmt"
	"sync"

	"github.com/paddock-dev/paddock/config"
	"github.com/paddock-dev/paddock/pkg/logger"
)

var (
	managerMu   sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk string
)

// Connect boots the storage manager. The s3 disk is only registered when
// credentials are configured; an app without object storage still runs, it
// just stores no media.
func Connect() {
	managerMu.Lock()
	defer managerMu.Unlock()

	defaultDisk = config.StorageDisk()
	disks["local"] = newLocalDisk()

	if config.StorageKey() != "" || config.StorageEndpoint() != "" {
		d, err := newS3Disk()
		if err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err)
		} else {
			disks["s3"] = d
		}
	}
}

// Configured reports whether the default disk is usable.
func Configured() bool {
	managerMu.RLock()
	defer managerMu.RUnlock()

	_, ok := disks[defaultDisk]
	return ok
}

// Default returns the default disk, or nil when it is not configured.
func Default() Disk {
	managerMu.RLock()
	defer managerMu.RUnlock()

	return disks[defaultDisk]
}

// Use returns the named disk ("local" or "s3").
func Use(name string) Disk {
	managerMu.RLock()
	d, ok := disks[name]
	managerMu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("storage: disk %q is not configured", name))
	}
	return d
}

// RegisterDisk plugs in a custom Disk implementation and makes it the
// default. Used by tests to substitute a fake backend.
func RegisterDisk(name string, d Disk) {
	managerMu.Lock()
	disks[name] = d
	defaultDisk = name
	managerMu.Unlock()
}

// Reset clears all registered disks. Intended for tests.
func Reset() {
	managerMu.Lock()
	disks = map[string]Disk{}
	defaultDisk = ""
	managerMu.Unlock()
}
