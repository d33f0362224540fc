package reports

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// OfficeTriple holds one candidate ID per provincial office.
type OfficeTriple struct {
	Congressman int `yaml:"congressman"`
	Governor    int `yaml:"governor"`
	ViceGov     int `yaml:"vicegov"`
}

// Sentinels are the reserved candidate IDs the classifier compares raw
// preference rows against, plus the election year that scopes leader
// records. The values track the ballot configuration for a given cycle, so
// deployments override them per election instead of recompiling.
type Sentinels struct {
	ElectionYear int          `yaml:"election_year"`
	Undecided    OfficeTriple `yaml:"undecided"`
	Straight     OfficeTriple `yaml:"straight"`
}

func DefaultSentinels() Sentinels {
	return Sentinels{
		ElectionYear: 2025,
		Undecided:    OfficeTriple{Congressman: 679, Governor: 680, ViceGov: 681},
		Straight:     OfficeTriple{Congressman: 660, Governor: 662, ViceGov: 676},
	}
}

// LoadSentinels returns the defaults, overridden by the YAML file named in
// SENTINELS_FILE when that variable is set.
func LoadSentinels() (Sentinels, error) {
	s := DefaultSentinels()

	path := os.Getenv("SENTINELS_FILE")
	if path == "" {
		return s, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read sentinel config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return s, fmt.Errorf("parse sentinel config %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("sentinel config %s: %w", path, err)
	}
	return s, nil
}

func (s Sentinels) Validate() error {
	if s.ElectionYear < 2000 || s.ElectionYear > 2100 {
		return fmt.Errorf("election_year %d out of range", s.ElectionYear)
	}
	for _, v := range []int{
		s.Undecided.Congressman, s.Undecided.Governor, s.Undecided.ViceGov,
		s.Straight.Congressman, s.Straight.Governor, s.Straight.ViceGov,
	} {
		if v <= 0 {
			return fmt.Errorf("sentinel candidate IDs must be positive, got %d", v)
		}
	}
	return nil
}
