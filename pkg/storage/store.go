// Package storage persists workspace documents (command templates, playbooks)
// as individual JSON files guarded by file locks, so concurrent agent
// processes sharing one workspace do not corrupt each other's writes.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofrs/flock"
)

// DocumentStore is a file-backed collection of named JSON documents.
//
// Storage layout:
//
//	{workspace}/
//	  {collection}/
//	    {name}.json
//	    {name}.json.lock
//
// Thread-safety: all operations are protected by file locks for concurrent
// access across processes.
type DocumentStore struct {
	root string // workspace/collection directory
	kind string // document kind for error messages ("template", "playbook")
}

// NewDocumentStore creates a store rooted at workspace/collection.
// The directory is created on first write, not here.
func NewDocumentStore(workspaceDir, collection, kind string) *DocumentStore {
	return &DocumentStore{
		root: filepath.Join(workspaceDir, collection),
		kind: kind,
	}
}

// Root returns the directory documents are stored under.
func (s *DocumentStore) Root() string {
	return s.root
}

// List returns the names of all stored documents, sorted.
func (s *DocumentStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s directory: %w", s.kind, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

// Get reads the named document into v.
func (s *DocumentStore) Get(name string, v any) error {
	if err := s.validateName(name); err != nil {
		return err
	}
	path := s.documentPath(name)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return NewNotFoundError(s.kind, name)
	}

	// Read with file lock
	lock := flock.New(path + ".lock")
	if err := lock.RLock(); err != nil {
		return fmt.Errorf("failed to acquire read lock: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", s.kind, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s %q: %w", s.kind, name, err)
	}
	return nil
}

// Put writes v as the named document. With overwrite false an existing
// document is an error.
func (s *DocumentStore) Put(name string, v any, overwrite bool) error {
	if err := s.validateName(name); err != nil {
		return err
	}
	path := s.documentPath(name)

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return NewAlreadyExistsError(s.kind, name)
		}
	}

	if err := os.MkdirAll(s.root, 0o700); err != nil {
		return fmt.Errorf("failed to create %s directory: %w", s.kind, err)
	}

	// Write with file lock
	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire write lock: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", s.kind, err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.kind, err)
	}
	return nil
}

// Delete removes the named document and its lock file.
func (s *DocumentStore) Delete(name string) error {
	if err := s.validateName(name); err != nil {
		return err
	}
	path := s.documentPath(name)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return NewNotFoundError(s.kind, name)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete %s: %w", s.kind, err)
	}
	_ = os.Remove(path + ".lock") // Ignore error
	return nil
}

// validateName rejects names that would escape the collection directory.
func (s *DocumentStore) validateName(name string) error {
	if name == "" {
		return NewInvalidInputError("name", "must not be empty")
	}
	if strings.ContainsAny(name, "/\\") || name == "." || name == ".." {
		return NewInvalidInputError("name", "must not contain path separators")
	}
	return nil
}

func (s *DocumentStore) documentPath(name string) string {
	return filepath.Join(s.root, name+".json")
}
