package ingest

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// A Snapshot is an export saved as YAML. The format
// selects which of the sections holds the export.
type Snapshot struct {
	Format string       `yaml:"format"`
	Fast   *FastExport  `yaml:"fast,omitempty"`
	Coral  *CoralExport `yaml:"coral,omitempty"`
}

// Returns the export of the snapshot's format
func (s *Snapshot) Source() (Source, error) {
	switch s.Format {
	case FormatFast:
		if s.Fast == nil {
			return nil, fmt.Errorf("%v: %w", s.Format, ErrMissingSection)
		}
		return s.Fast, nil
	case FormatCoral:
		if s.Coral == nil {
			return nil, fmt.Errorf("%v: %w", s.Format, ErrMissingSection)
		}
		return s.Coral, nil
	default:
		return nil, fmt.Errorf("%q: %w", s.Format, ErrUnknownFormat)
	}
}

func DecodeSnapshot(r io.Reader) (Source, error) {
	var snapshot Snapshot
	if err := yaml.NewDecoder(r).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return snapshot.Source()
}

func LoadSnapshot(path string) (Source, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	defer file.Close()

	return DecodeSnapshot(file)
}
