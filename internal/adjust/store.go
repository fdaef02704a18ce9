// Package adjust persists per-beach calibration overrides.
//
// The file backend keeps the whole store in one human-diffable JSON file
// mapping "spot/beach" keys to their adjustment parameters:
//
//	{
//	  "miramar/general": {
//	    "delta_altura": 0.2,
//	    "factor_periodo": 1.1
//	  }
//	}
//
// A missing file is an empty store. A malformed file is silently treated as
// empty too: a corrupted calibration file must never take the bot down.
package adjust

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/couchcryptid/surf-session-bot/internal/domain"
)

// Store reads and writes calibration overrides keyed by spot and beach.
// The forecasting pipeline only ever reads; writes come from the admin
// command.
type Store interface {
	// Get returns the adjustments for one spot/beach pair, or the zero set
	// when none are stored.
	Get(spotKey, beachKey string) (domain.AdjustmentSet, error)

	// Set updates a single adjustment parameter, creating the entry if
	// needed. Only the parameter names in domain (delta_altura,
	// factor_periodo) are accepted.
	Set(spotKey, beachKey, param string, value float64) error
}

// Key builds the persisted map key for a spot/beach pair.
func Key(spotKey, beachKey string) string {
	return spotKey + "/" + beachKey
}

// FileStore is the JSON-file Store backend. Every access loads or rewrites
// the whole file; there is no locking, so concurrent writers race and the
// last one wins. Acceptable for low-frequency operator updates, and a known
// limitation rather than something this layer papers over.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the JSON file at path. The file
// does not need to exist yet.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Get(spotKey, beachKey string) (domain.AdjustmentSet, error) {
	all, err := s.loadAll()
	if err != nil {
		return domain.AdjustmentSet{}, err
	}
	return all[Key(spotKey, beachKey)], nil
}

func (s *FileStore) Set(spotKey, beachKey, param string, value float64) error {
	all, err := s.loadAll()
	if err != nil {
		return err
	}

	entry := all[Key(spotKey, beachKey)]
	switch param {
	case domain.ParamHeightDelta:
		entry.HeightDelta = &value
	case domain.ParamPeriodFactor:
		entry.PeriodFactor = &value
	default:
		return fmt.Errorf("unknown adjustment parameter %q", param)
	}
	all[Key(spotKey, beachKey)] = entry

	return s.saveAll(all)
}

// loadAll reads the full store. Missing or unreadable/corrupt files come
// back as an empty map, never an error.
func (s *FileStore) loadAll() (map[string]domain.AdjustmentSet, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return map[string]domain.AdjustmentSet{}, nil
	}

	var all map[string]domain.AdjustmentSet
	if err := json.Unmarshal(data, &all); err != nil {
		return map[string]domain.AdjustmentSet{}, nil
	}
	if all == nil {
		all = map[string]domain.AdjustmentSet{}
	}
	return all, nil
}

// saveAll rewrites the file with stable formatting: two-space indent and
// keys sorted by the JSON encoder.
func (s *FileStore) saveAll(all map[string]domain.AdjustmentSet) error {
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("encode adjustments: %w", err)
	}
	if err := os.WriteFile(s.path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write adjustments file: %w", err)
	}
	return nil
}
