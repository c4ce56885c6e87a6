package seed

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Roster is a replayable population: mutts in creation order, then ratings.
type Roster struct {
	Mutts   []MuttEntry   `yaml:"mutts"`
	Ratings []RatingEntry `yaml:"ratings"`
}

type MuttEntry struct {
	TokenID         int64  `yaml:"token_id"`
	Breeder         string `yaml:"breeder"`
	Personality     string `yaml:"personality"`
	PersonalityDesc string `yaml:"personality_desc"`
	ParentA         int64  `yaml:"parent_a"`
	ParentB         int64  `yaml:"parent_b"`
}

func (e MuttEntry) origin() bool {
	return e.ParentA <= 0 && e.ParentB <= 0
}

type RatingEntry struct {
	TokenID int64  `yaml:"token_id"`
	Voter   string `yaml:"voter"`
	Score   int    `yaml:"score"`
}

func LoadRoster(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roster: %w", err)
	}
	return ParseRoster(data)
}

func ParseRoster(data []byte) (*Roster, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var roster Roster
	if err := dec.Decode(&roster); err != nil {
		return nil, fmt.Errorf("parsing roster: %w", err)
	}

	seen := make(map[int64]struct{}, len(roster.Mutts))
	for i, m := range roster.Mutts {
		if m.TokenID <= 0 {
			return nil, fmt.Errorf("roster mutt %d: token_id must be positive", i)
		}
		if _, dup := seen[m.TokenID]; dup {
			return nil, fmt.Errorf("roster mutt %d: duplicate token_id %d", i, m.TokenID)
		}
		seen[m.TokenID] = struct{}{}
	}
	return &roster, nil
}
