package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/meltforce/strain/internal/models"
)

// DefaultStateKey is the fixed key the application state is stored under.
const DefaultStateKey = "strain-data-v2"

// FormatError reports a stored document that cannot be turned back into state.
type FormatError struct {
	Err error
}

func (e *FormatError) Error() string {
	return "malformed state document: " + e.Err.Error()
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Encode serializes the whole state as one JSON document.
func Encode(st *models.State) ([]byte, error) {
	data, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("encoding state: %w", err)
	}
	return data, nil
}

// Decode parses a stored document. Fields absent from the document keep
// their defaults, so a partial document restores what it has. Any parse or
// shape failure is reported as a *FormatError.
func Decode(data []byte) (*models.State, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return nil, &FormatError{Err: errors.New("document is not a JSON object")}
	}

	st := &models.State{Profile: models.Profile{Theme: models.ThemeDark}}
	if err := json.Unmarshal(data, st); err != nil {
		return nil, &FormatError{Err: err}
	}
	st.Normalize()
	if err := st.Check(); err != nil {
		return nil, &FormatError{Err: err}
	}
	return st, nil
}

// StateStore reads and writes the application state under a single key.
type StateStore struct {
	kv  KV
	key string
	log *slog.Logger
}

// NewStateStore creates a StateStore. An empty key selects DefaultStateKey.
func NewStateStore(kv KV, key string, log *slog.Logger) *StateStore {
	if key == "" {
		key = DefaultStateKey
	}
	return &StateStore{kv: kv, key: key, log: log}
}

// Load returns the saved state and true, or nil and false when there is no
// usable prior state. A malformed document or a failing backend is logged
// and treated exactly like an absent one.
func (s *StateStore) Load(ctx context.Context) (*models.State, bool) {
	data, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, ErrNotFound) {
		return nil, false
	}
	if err != nil {
		s.log.Warn("failed to read saved state", "key", s.key, "error", err)
		return nil, false
	}

	st, err := Decode(data)
	if err != nil {
		s.log.Warn("ignoring saved state", "key", s.key, "error", err)
		return nil, false
	}
	return st, true
}

// Save overwrites the stored document with the full state.
func (s *StateStore) Save(ctx context.Context, st *models.State) error {
	data, err := Encode(st)
	if err != nil {
		return err
	}
	if err := s.kv.Put(ctx, s.key, data); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	return nil
}

// Reset removes the stored document.
func (s *StateStore) Reset(ctx context.Context) error {
	if err := s.kv.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("resetting state: %w", err)
	}
	return nil
}
