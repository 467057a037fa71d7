package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// Directory and file permissions used for files Koda writes.
	DirPerm  = 0o755
	FilePerm = 0o644

	// KodaExt and LuaExt are the extensions the runner accepts.
	KodaExt = ".kod"
	LuaExt  = ".lua"

	// DefaultHistoryFile is the REPL history file name in the home directory.
	DefaultHistoryFile = ".koda_historik"
)

// IsSourcePath reports whether path names a file the runner accepts.
func IsSourcePath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case KodaExt, LuaExt:
		return true
	}
	return false
}

// IsKodaPath reports whether path names a Koda source file.
func IsKodaPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), KodaExt)
}

// IsLuaPath reports whether path names a plain Lua file.
func IsLuaPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), LuaExt)
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// HistoryPath resolves the REPL history file. An empty configured value
// falls back to DefaultHistoryFile in the home directory.
func HistoryPath(configured string) (string, error) {
	configured = strings.TrimSpace(configured)
	if configured == "" {
		configured = filepath.Join("~", DefaultHistoryFile)
	}
	return ExpandHome(configured)
}

func EnsureDir(path string) error {
	return os.MkdirAll(path, DirPerm)
}

// EnsureParentDir makes sure the parent directory for a file exists.
func EnsureParentDir(filePath string) error {
	dir := filepath.Dir(filePath)
	return EnsureDir(dir)
}
