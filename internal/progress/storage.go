package progress

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoProfile is returned by Load when nothing has been saved yet.
var ErrNoProfile = errors.New("no saved profile")

// Storage defines the interface for loading and saving progression.
// This allows for mocking the storage layer during tests.
type Storage interface {
	// Load returns the last saved snapshot.
	Load() (AppData, error)
	// Save replaces the stored snapshot.
	Save(data AppData) error
}

// JSONFileStorage is an implementation of Storage that uses a JSON file.
type JSONFileStorage struct {
	path string
}

// NewJSONFileStorage creates a JSONFileStorage at path. An empty path
// selects ~/.memorygame/profile.json.
func NewJSONFileStorage(path string) (*JSONFileStorage, error) {
	if path != "" {
		return &JSONFileStorage{path: path}, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("could not get user home directory: %w", err)
	}
	return &JSONFileStorage{path: filepath.Join(homeDir, ".memorygame", "profile.json")}, nil
}

// Path returns the file backing the storage.
func (jfs *JSONFileStorage) Path() string {
	return jfs.path
}

// Load reads and decodes the profile file.
func (jfs *JSONFileStorage) Load() (AppData, error) {
	file, err := os.Open(jfs.path)
	if errors.Is(err, os.ErrNotExist) {
		return AppData{}, ErrNoProfile
	}
	if err != nil {
		return AppData{}, fmt.Errorf("error opening profile file for reading: %w", err)
	}
	defer file.Close()

	var data AppData
	if err := json.NewDecoder(bufio.NewReader(file)).Decode(&data); err != nil {
		return AppData{}, fmt.Errorf("error decoding profile: %w", err)
	}
	return data, nil
}

// Save encodes the snapshot and replaces the profile file. The new content
// is written to a temporary file first so a crash never leaves a torn file.
func (jfs *JSONFileStorage) Save(data AppData) error {
	dir := filepath.Dir(jfs.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating profile directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".profile-*.json")
	if err != nil {
		return fmt.Errorf("error opening profile file for writing: %w", err)
	}
	defer os.Remove(tmp.Name())

	writer := bufio.NewWriter(tmp)
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		tmp.Close()
		return fmt.Errorf("error encoding profile: %w", err)
	}
	if err := writer.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("error writing profile: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error writing profile: %w", err)
	}
	if err := os.Rename(tmp.Name(), jfs.path); err != nil {
		return fmt.Errorf("error replacing profile file: %w", err)
	}
	return nil
}
