package report

import "solvency-engine/domain"

const ansiReset = "\033[0m"

// DisplayStyle is how a tier is drawn on a terminal.
type DisplayStyle struct {
	ANSI string
}

var tierStyles = map[domain.RiskTier]DisplayStyle{
	domain.TierSafe:     {ANSI: "\033[92m"}, // green
	domain.TierCaution:  {ANSI: "\033[93m"}, // yellow
	domain.TierDistress: {ANSI: "\033[91m"}, // red
}

func StyleFor(tier domain.RiskTier) DisplayStyle {
	return tierStyles[tier]
}

// Paint wraps s in the style's escape codes when color is on.
func (s DisplayStyle) Paint(text string, color bool) string {
	if !color || s.ANSI == "" {
		return text
	}
	return s.ANSI + text + ansiReset
}
