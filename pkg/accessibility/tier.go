package accessibility

import (
	"encoding/json"
	"fmt"
)

// Tier is the ordinal rail connectivity rating of a population cell.
// Lower values are better.
type Tier int

const (
	TierVeryGood Tier = iota
	TierGood
	TierModerate
	TierPoor
)

var tierNames = map[Tier]string{
	TierVeryGood: "VeryGood",
	TierGood:     "Good",
	TierModerate: "Moderate",
	TierPoor:     "Poor",
}

var tierColours = map[Tier]string{
	TierVeryGood: "green",
	TierGood:     "lightgreen",
	TierModerate: "orange",
	TierPoor:     "red",
}

// Tiers lists every tier in canonical order, best first.
func Tiers() []Tier {
	return []Tier{TierVeryGood, TierGood, TierModerate, TierPoor}
}

func (t Tier) String() string {
	if name, exists := tierNames[t]; exists {
		return name
	}
	return fmt.Sprintf("Tier(%d)", int(t))
}

// Colour is the fixed map colour used when rendering the tier.
func (t Tier) Colour() string {
	return tierColours[t]
}

func (t Tier) Valid() bool {
	_, exists := tierNames[t]
	return exists
}

// Better reports whether t ranks above other.
func (t Tier) Better(other Tier) bool {
	return t < other
}

func ParseTier(name string) (Tier, error) {
	for tier, tierName := range tierNames {
		if tierName == name {
			return tier, nil
		}
	}
	return TierPoor, fmt.Errorf("unknown accessibility tier %q", name)
}

func (t Tier) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid accessibility tier %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *Tier) UnmarshalText(text []byte) error {
	tier, err := ParseTier(string(text))
	if err != nil {
		return err
	}
	*t = tier
	return nil
}

func (t Tier) MarshalJSON() ([]byte, error) {
	text, err := t.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

func (t *Tier) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	return t.UnmarshalText([]byte(name))
}
