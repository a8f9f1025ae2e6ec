package profile

import (
	"fmt"
	"os"
	"time"
)

// Backup copies the file at path to "<path>.backup_YYYYMMDD_HHMMSS" and returns the new path.
func Backup(path string, now time.Time) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &LoadError{
			Path:    path,
			Message: fmt.Sprintf("profile file not found: %s", path),
			Cause:   err,
		}
	}

	backupPath := fmt.Sprintf("%s.backup_%s", path, now.Format("20060102_150405"))
	if err := os.WriteFile(backupPath, data, 0644); err != nil {
		return "", &SaveError{Path: backupPath, Message: "failed to write backup", Cause: err}
	}
	return backupPath, nil
}

// FileStats describes a file on disk.
type FileStats struct {
	SizeBytes int64     `json:"size_bytes"`
	Modified  time.Time `json:"modified"`
	SizeHuman string    `json:"size_human"`
}

// Stat returns size and modification time for path. ok is false if the file does not exist.
func Stat(path string) (FileStats, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return FileStats{}, false
	}
	return FileStats{
		SizeBytes: info.Size(),
		Modified:  info.ModTime(),
		SizeHuman: FormatFileSize(info.Size()),
	}, true
}

// FormatFileSize renders a byte count as "0 B", "512.0 B", "1.5 KB" and so on, up to GB.
func FormatFileSize(size int64) string {
	if size == 0 {
		return "0 B"
	}
	units := []string{"B", "KB", "MB", "GB"}
	value := float64(size)
	i := 0
	for value >= 1024 && i < len(units)-1 {
		value /= 1024
		i++
	}
	return fmt.Sprintf("%.1f %s", value, units[i])
}
