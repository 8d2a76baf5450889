// Package api holds filesystem helpers shared by hop's configuration code.
package api

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/atomic"
)

// AppName is the directory name used under the user's config directory.
const AppName = "hop"

var (
	// ErrIsDirectory is returned when a file path names a directory.
	ErrIsDirectory = errors.New("path is a directory")
	// ErrNotRegular is returned when a file path names something other than a
	// regular file.
	ErrNotRegular = errors.New("unknown file state")
)

// GetConfigPath returns the path to filename in hop's config directory.
// It uses $XDG_CONFIG_HOME first, then ~/.config, and finally a temp
// directory.
func GetConfigPath(filename string) string {
	if xdgHome, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok && xdgHome != "" {
		return filepath.Join(xdgHome, AppName, filename)
	}

	usrHome, err := os.UserHomeDir()
	if err == nil && usrHome != "" {
		return filepath.Join(usrHome, ".config", AppName, filename)
	}

	tmpPath := filepath.Join(os.TempDir(), AppName, filename)

	slog.Warn("could not determine user config directory, using temp path",
		slog.String("path", tmpPath),
		slog.Any("err", fmt.Errorf("$XDG_CONFIG_HOME is unset, fall back to home directory: %w", err)),
	)

	return tmpPath
}

// ReadFile reads a regular file. A missing file produces an error matching
// [os.ErrNotExist].
func ReadFile(path string) ([]byte, error) {
	err := checkRegular(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: Potential file inclusion via variable.
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// WriteFile atomically replaces the file at path with data, creating parent
// directories as needed. Readers see either the old or the new content.
func WriteFile(path string, data []byte) error {
	err := os.MkdirAll(filepath.Dir(path), 0o700)
	if err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	err = atomic.WriteFile(path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	// New files are created with the temp file's mode.
	err = os.Chmod(path, 0o600)
	if err != nil {
		return fmt.Errorf("chmod file: %w", err)
	}

	return nil
}

// WriteDefaultFile writes defaultData to path unless a file already exists.
// Using force backs up and replaces an existing file. It reports whether the
// file was written.
func WriteDefaultFile(path string, defaultData []byte, force bool) (bool, error) {
	err := checkRegular(path)

	exists := err == nil
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return false, err
	}

	if exists && !force {
		slog.Debug("file already exists, skipping write", slog.String("path", path))

		return false, nil
	}

	if exists {
		backupPath := filepath.Join(filepath.Dir(path),
			fmt.Sprintf("%s.%d.old", filepath.Base(path), time.Now().UnixNano()))

		slog.Info("backing up existing file", slog.String("path", backupPath))

		err = os.Rename(path, backupPath)
		if err != nil {
			return false, fmt.Errorf("back up existing file: %w", err)
		}
	}

	slog.Info("write default file", slog.String("path", path))

	err = WriteFile(path, defaultData)
	if err != nil {
		return false, err
	}

	return true, nil
}

func checkRegular(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("%s: %w", path, ErrIsDirectory)
	}

	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s: %w", path, ErrNotRegular)
	}

	return nil
}
