package models

import (
	"encoding/json"
	"fmt"
)

// Tier represents the compute-cost class a role runs on.
// Tiers form a total order: TierLocal < TierMid < TierPremium.
type Tier int

const (
	// TierLocal is the free/local tier.
	TierLocal Tier = iota
	// TierMid is the mid-cost tier.
	TierMid
	// TierPremium is the premium tier. Reasoning depth is only
	// meaningful at this tier.
	TierPremium
)

var tierNames = map[Tier]string{
	TierLocal:   "local",
	TierMid:     "mid",
	TierPremium: "premium",
}

// Valid returns true if the tier is a known value.
func (t Tier) Valid() bool {
	switch t {
	case TierLocal, TierMid, TierPremium:
		return true
	default:
		return false
	}
}

// String returns the tier's wire name.
func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// Up returns the next tier up, clamped at TierPremium.
func (t Tier) Up() Tier {
	if t >= TierPremium {
		return TierPremium
	}
	return t + 1
}

// Down returns the next tier down, clamped at TierLocal.
func (t Tier) Down() Tier {
	if t <= TierLocal {
		return TierLocal
	}
	return t - 1
}

// ParseTier converts a wire name back into a Tier.
func ParseTier(s string) (Tier, error) {
	for t, name := range tierNames {
		if name == s {
			return t, nil
		}
	}
	return TierLocal, fmt.Errorf("unknown tier %q", s)
}

// MarshalJSON encodes the tier as its wire name.
func (t Tier) MarshalJSON() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid tier %d", int(t))
	}
	return json.Marshal(t.String())
}

// MarshalYAML encodes the tier as its wire name.
func (t Tier) MarshalYAML() (any, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid tier %d", int(t))
	}
	return t.String(), nil
}

// UnmarshalJSON decodes a tier from its wire name.
func (t *Tier) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTier(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
