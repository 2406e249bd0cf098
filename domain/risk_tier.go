package domain

import (
	"encoding/json"
	"fmt"
)

type RiskTier int

const (
	TierDistress RiskTier = iota
	TierCaution
	TierSafe
)

func (t RiskTier) String() string {
	switch t {
	case TierSafe:
		return "SAFE"
	case TierCaution:
		return "CAUTION"
	case TierDistress:
		return "DISTRESS"
	}
	return fmt.Sprintf("RiskTier(%d)", int(t))
}

// Label is the status shown in reports, with the rating grade in parentheses.
func (t RiskTier) Label() string {
	switch t {
	case TierSafe:
		return "SAFE (AAA)"
	case TierCaution:
		return "CAUTION (BBB)"
	default:
		return "DISTRESS (D)"
	}
}

// ParseRiskTier accepts the names produced by String.
func ParseRiskTier(s string) (RiskTier, error) {
	switch s {
	case "SAFE":
		return TierSafe, nil
	case "CAUTION":
		return TierCaution, nil
	case "DISTRESS":
		return TierDistress, nil
	}
	return TierDistress, fmt.Errorf("unknown risk tier %q", s)
}

func (t RiskTier) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *RiskTier) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseRiskTier(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
