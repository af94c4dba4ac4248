package paths

import (
	"os"
	"path/filepath"
)

const (
	AppDirName      = "teamspack"
	ConfigFileName  = "teamspack-config.json"
	HistoryFileName = "history.db"
	DirPerm         = 0755
	FilePerm        = 0644
)

// AtomicWrite writes data to path via a temporary file + rename to avoid
// partial writes. The parent directory is created if needed.
func AtomicWrite(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), DirPerm); err != nil {
		return err
	}
	tmp := TempPath(path)
	if err := os.WriteFile(tmp, data, FilePerm); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// TempPath returns the sibling path AtomicWrite stages data in.
func TempPath(path string) string {
	return path + ".tmp"
}

// DataDir returns the platform-specific data directory for teamspack:
//   - Windows: %APPDATA%\teamspack
//   - Unix:    ~/.config/teamspack
//
// Falls back to os.TempDir()/teamspack if neither is available.
func DataDir() string {
	if appdata := os.Getenv("APPDATA"); appdata != "" {
		return filepath.Join(appdata, AppDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppDirName)
	}
	return filepath.Join(home, ".config", AppDirName)
}
