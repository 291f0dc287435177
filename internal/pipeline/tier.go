package pipeline

import "github.com/jonathan/resume-atsfix/internal/types"

// Score thresholds for strategy selection. These are the same bands the
// rewriter uses to pick its prompt; the one score drives both decisions.
const (
	// rebuildMaxScore and below: the layout is part of the problem, rebuild
	// from scratch.
	rebuildMaxScore = 60.0

	// conservativeMinScore and above: the resume already scores well, edit
	// the original PDF in place to keep its look.
	conservativeMinScore = 70.0
)

// SelectTier picks the generation strategy for a score. Without an original
// PDF the conservative tier is impossible and everything rebuilds from text.
func SelectTier(score float64, hasOriginalPDF bool) types.Tier {
	switch {
	case score <= rebuildMaxScore:
		return types.TierRebuild
	case score < conservativeMinScore:
		return types.TierHybrid
	case !hasOriginalPDF:
		return types.TierRebuild
	default:
		return types.TierConservative
	}
}

// fallbackTier returns the next safer tier. The dump tier is the floor and
// falls back to itself.
func fallbackTier(tier types.Tier) types.Tier {
	switch tier {
	case types.TierConservative:
		return types.TierRebuild
	case types.TierHybrid, types.TierRebuild:
		return types.TierDump
	default:
		return types.TierDump
	}
}
