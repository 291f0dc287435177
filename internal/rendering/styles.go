package rendering

import "github.com/jonathan/resume-atsfix/internal/types"

// Page geometry in points (A4 portrait).
const (
	PageWidth    = 595.28
	PageHeight   = 841.89
	Margin       = 50.0
	ContentWidth = PageWidth - 2*Margin

	// Last usable baseline before a page break.
	bottomY = 780.0

	lineHeightFactor = 1.4
)

// Style is the visual treatment applied to one line role.
type Style struct {
	Family      string
	FontStyle   string
	Size        float64
	Gray        int
	RuleAbove   bool
	SpaceBefore float64
}

// LineHeight returns the vertical advance for one wrapped line.
func (st Style) LineHeight() float64 {
	return st.Size * lineHeightFactor
}

// styleFor maps a role to its styling. aggressiveness scales heading sizes
// and leading; 1.0 is the standard rebuild look, the hybrid tier passes a
// lower value for a denser, more conventional layout.
func styleFor(role types.LineRole, aggressiveness float64) Style {
	if aggressiveness <= 0 {
		aggressiveness = 1.0
	}
	switch role {
	case types.RoleName:
		return Style{Family: "Helvetica", FontStyle: "B", Size: 20 * aggressiveness, SpaceBefore: 4}
	case types.RoleSectionHeader:
		return Style{Family: "Helvetica", FontStyle: "B", Size: 13 * aggressiveness, RuleAbove: true, SpaceBefore: 10}
	case types.RoleJobTitle:
		return Style{Family: "Helvetica", FontStyle: "B", Size: 11.5 * aggressiveness, SpaceBefore: 6}
	case types.RoleContact, types.RoleDateLocation:
		return Style{Family: "Helvetica", Size: 9, Gray: 110}
	case types.RoleBullet, types.RoleSkillItem:
		return Style{Family: "Helvetica", Size: 10.5}
	default:
		return Style{Family: "Helvetica", Size: 10.5}
	}
}
