// Package names picks random names for hired staff, companies and ships.
package names

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/terra-clan/spacegom-engine/internal/dice"
)

// CSV files expected in the names directory. Each has an "id,name" header.
const (
	PersonalFile = "personal_names.csv"
	CompanyFile  = "megacorp_names.csv"
	ShipFile     = "ship_names.csv"
)

// Returned when the matching list is empty.
const (
	FallbackPersonal = "John Doe"
	FallbackCompany  = "Stellar Corporation"
	FallbackShip     = "Enterprise"
)

// Service holds the loaded name lists.
type Service struct {
	dir string
	src dice.Source

	mu        sync.RWMutex
	personal  []string
	companies []string
	ships     []string
}

// NewService creates a service reading from dir. Call Reload to load the
// lists; until then every pick returns the fallback.
func NewService(dir string, src dice.Source) *Service {
	if src == nil {
		src = dice.DefaultSource()
	}
	return &Service{dir: dir, src: src}
}

// Reload re-reads every list from disk. Missing files leave that list empty.
func (s *Service) Reload() error {
	personal, err := readNames(filepath.Join(s.dir, PersonalFile))
	if err != nil {
		return err
	}
	companies, err := readNames(filepath.Join(s.dir, CompanyFile))
	if err != nil {
		return err
	}
	ships, err := readNames(filepath.Join(s.dir, ShipFile))
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.personal, s.companies, s.ships = personal, companies, ships
	s.mu.Unlock()

	slog.Info("names loaded",
		"dir", s.dir,
		"personal", len(personal),
		"companies", len(companies),
		"ships", len(ships),
	)
	return nil
}

// Personal returns a random personal name.
func (s *Service) Personal() string {
	return s.pick(func() []string { return s.personal }, FallbackPersonal)
}

// Company returns a random company name.
func (s *Service) Company() string {
	return s.pick(func() []string { return s.companies }, FallbackCompany)
}

// Ship returns a random ship name.
func (s *Service) Ship() string {
	return s.pick(func() []string { return s.ships }, FallbackShip)
}

// Counts reports how many names each list holds.
func (s *Service) Counts() (personal, companies, ships int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.personal), len(s.companies), len(s.ships)
}

func (s *Service) pick(list func() []string, fallback string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := list()
	if len(names) == 0 {
		return fallback
	}
	return names[s.src.IntN(len(names))]
}

func readNames(path string) ([]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Warn("names file not found", "file", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open names file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	col := 1
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), "name") {
			col = i
		}
	}

	var out []string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
		}
		if col >= len(rec) {
			continue
		}
		if name := strings.TrimSpace(rec[col]); name != "" {
			out = append(out, name)
		}
	}
	return out, nil
}
