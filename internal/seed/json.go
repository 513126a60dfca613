package seed

import (
	"encoding/json"
	"os"
	"path/filepath"

	"clubroster/internal/model"
	"clubroster/internal/store"
)

func loadJSON(path string) (store.Seed, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return store.Seed{}, err
	}
	var s store.Seed
	if err := json.Unmarshal(b, &s); err != nil {
		return store.Seed{}, err
	}
	return s, nil
}

func saveJSON(path string, s store.Seed) error {
	if s.Tags == nil {
		s.Tags = []model.Tag{}
	}
	if s.Members == nil {
		s.Members = []model.Member{}
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	// Temp file + rename keeps an existing seed intact until the new one is complete.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(b, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
