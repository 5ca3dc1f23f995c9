package fsutil

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/gozen/pkg/config"
)

// BackupSuffix is the suffix used for sidecar backup files.
const BackupSuffix = ".gozen.bak"

// BackupPath returns the backup path for the given file, or "" when mode
// disables backups. Unknown modes fall back to sidecar.
func BackupPath(path string, mode config.BackupMode) string {
	if mode == config.BackupModeNone {
		return ""
	}
	return path + BackupSuffix
}

// CreateBackup copies path to its backup location unless a backup already
// exists, so repeated edits keep the very first version. It reports whether
// a backup was written.
func CreateBackup(ctx context.Context, path string, cfg config.BackupsConfig) (bool, error) {
	if !cfg.Enabled {
		return false, nil
	}

	backupPath := BackupPath(path, cfg.Mode)
	if backupPath == "" {
		return false, nil
	}

	if _, err := os.Stat(backupPath); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat backup path: %w", err)
	}

	content, info, err := ReadFile(ctx, path)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("read original for backup: %w", err)
	}

	if err := WriteAtomic(ctx, backupPath, content, info.Mode); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return true, nil
}

// RestoreBackup writes the backup of path back over it. It reports false
// when there is no backup.
func RestoreBackup(ctx context.Context, path string, mode config.BackupMode) (bool, error) {
	backupPath := BackupPath(path, mode)
	if backupPath == "" {
		return false, nil
	}

	content, info, err := ReadFile(ctx, backupPath)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("read backup: %w", err)
	}

	if err := WriteAtomic(ctx, path, content, info.Mode); err != nil {
		return false, fmt.Errorf("restore from backup: %w", err)
	}
	return true, nil
}
