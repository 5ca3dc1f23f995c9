package fsutil

import (
	"context"
	"fmt"

	"github.com/yaklabco/gozen/pkg/config"
)

// SaveResult describes what Save did.
type SaveResult struct {
	// Written is false when the content was already on disk.
	Written bool

	// BackupPath is set when a backup was created.
	BackupPath string
}

// Save writes edited content back to the file described by info. It refuses
// with ErrModified when the file changed after it was read, backs the file up
// according to backups, and keeps the original permissions.
func Save(ctx context.Context, info *FileInfo, content []byte, backups config.BackupsConfig) (SaveResult, error) {
	var result SaveResult

	modified, err := CheckModified(ctx, info)
	if err != nil {
		return result, err
	}
	if modified {
		return result, fmt.Errorf("%w: %s", ErrModified, info.Path)
	}

	created, err := CreateBackup(ctx, info.Path, backups)
	if err != nil {
		return result, err
	}
	if created {
		result.BackupPath = BackupPath(info.Path, backups.Mode)
	}

	result.Written, err = WriteAtomicIfChanged(ctx, info.Path, content, info.Mode)
	return result, err
}
