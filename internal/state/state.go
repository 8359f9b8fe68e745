package state

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
)

// ImportRecord is the last import of one source document
type ImportRecord struct {
	ID         string    `json:"id"`
	MTime      int64     `json:"mtime"`
	Hash       string    `json:"hash"`
	OutputPath string    `json:"output_path,omitempty"`
	ImportedAt time.Time `json:"imported_at"`
	Lesson     int       `json:"lesson_number"`
	Dropped    int       `json:"dropped"`
	Missing    int       `json:"missing"`
}

// State is the import history keyed by absolute source path
type State struct {
	Imports map[string]*ImportRecord `json:"imports"`
}

// NewState creates a new empty state
func NewState() *State {
	return &State{
		Imports: make(map[string]*ImportRecord),
	}
}

// Load reads state from the state file
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewState(), nil
		}
		return nil, err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}

	if state.Imports == nil {
		state.Imports = make(map[string]*ImportRecord)
	}

	return &state, nil
}

// Save writes state to the state file
func (s *State) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	return nil
}

// ComputeHash computes SHA256 hash of a file
func ComputeHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("sha256:%x", h.Sum(nil)), nil
}

// HasChanged checks if a source document changed since its last import.
// mtime is checked first; the hash settles it when mtime moved.
func (s *State) HasChanged(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}

	rec, exists := s.Imports[path]
	if !exists {
		return true, nil
	}

	if info.ModTime().Unix() == rec.MTime {
		return false, nil
	}

	hash, err := ComputeHash(path)
	if err != nil {
		return false, err
	}

	return hash != rec.Hash, nil
}

// Record stores an import of path and returns the new record
func (s *State) Record(path, outputPath string, lessonNumber, dropped, missing int) (*ImportRecord, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	hash, err := ComputeHash(path)
	if err != nil {
		return nil, err
	}

	rec := &ImportRecord{
		ID:         uuid.New().String(),
		MTime:      info.ModTime().Unix(),
		Hash:       hash,
		OutputPath: outputPath,
		ImportedAt: time.Now().UTC(),
		Lesson:     lessonNumber,
		Dropped:    dropped,
		Missing:    missing,
	}
	s.Imports[path] = rec

	return rec, nil
}

// Entry pairs a source path with its record
type Entry struct {
	Source string
	*ImportRecord
}

// History returns all records, most recent first
func (s *State) History() []Entry {
	entries := make([]Entry, 0, len(s.Imports))
	for src, rec := range s.Imports {
		entries = append(entries, Entry{Source: src, ImportRecord: rec})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].ImportedAt.Equal(entries[j].ImportedAt) {
			return entries[i].Source < entries[j].Source
		}
		return entries[i].ImportedAt.After(entries[j].ImportedAt)
	})
	return entries
}

// GetMTime returns the recorded modification time for a source
func (s *State) GetMTime(path string) time.Time {
	if rec, exists := s.Imports[path]; exists {
		return time.Unix(rec.MTime, 0)
	}
	return time.Time{}
}
