package repair

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-atsfix/internal/rendering"
	"github.com/jonathan/resume-atsfix/internal/types"
	"github.com/jonathan/resume-atsfix/internal/validation"
)

func TestMissingLines_ExactAndLooseMatches(t *testing.T) {
	original := []string{
		"Jane Doe",
		"Built the billing service and cut infra spend",
		"Completely lost line",
		"",
	}
	placed := []string{
		"jane doe", // case difference
		"Built the billing service and cut", // wrapped prefix
		"infra spend",                       // wrapped remainder
	}

	missing := MissingLines(original, placed)
	assert.Equal(t, []string{"Completely lost line"}, missing)
}

func TestMissingLines_NothingMissing(t *testing.T) {
	lines := []string{"alpha", "beta"}
	assert.Empty(t, MissingLines(lines, lines))
}

func TestRecover_AppendsMissingContentAndRevalidates(t *testing.T) {
	improved := "Jane Doe\nEXPERIENCE\nBuilt the billing service\nEDUCATION\nBSc Computer Science\nSKILLS\nGo and Python"
	originalLines := strings.Split(improved, "\n")

	session := rendering.NewSession(1.0)
	// Render only half the content to force a failed validation.
	require.NoError(t, session.RenderBlocks([]types.ContentBlock{
		{Role: types.RoleName, Lines: originalLines[:3]},
	}))

	before := validation.Validate(improved, session.Placed())
	require.False(t, before.Passed)

	recovered, err := Recover(session, originalLines, session.Placed())
	require.NoError(t, err)
	assert.Equal(t, 4, recovered)

	after := validation.Validate(improved, session.Placed())
	assert.True(t, after.Passed, "recovery restores every missing line")
}

func TestRecover_NoMissingLinesAddsNoPage(t *testing.T) {
	session := rendering.NewSession(1.0)
	require.NoError(t, session.RenderBlocks([]types.ContentBlock{
		{Role: types.RoleGeneral, Lines: []string{"only line"}},
	}))
	pages := session.PageCount()

	recovered, err := Recover(session, []string{"only line"}, session.Placed())
	require.NoError(t, err)
	assert.Zero(t, recovered)
	assert.Equal(t, pages, session.PageCount())
}
