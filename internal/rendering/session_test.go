package rendering

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-atsfix/internal/types"
)

func TestRenderBlocks_PlacesEveryLine(t *testing.T) {
	blocks := []types.ContentBlock{
		{Role: types.RoleName, Lines: []string{"Jane Doe", "jane@example.com"}},
		{Role: types.RoleSectionHeader, Lines: []string{"EXPERIENCE", "• Shipped the billing service", "• Cut infra spend"}},
	}

	session := NewSession(1.0)
	require.NoError(t, session.RenderBlocks(blocks))

	placed := strings.Join(session.Placed(), "\n")
	assert.Contains(t, placed, "Jane Doe")
	assert.Contains(t, placed, "jane@example.com")
	assert.Contains(t, placed, "EXPERIENCE")
	assert.Contains(t, placed, "Shipped the billing service")

	out, err := session.Output()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out[:5]), "%PDF-"))
}

func TestRenderBlocks_SinglePageForShortParagraph(t *testing.T) {
	words := make([]string, 50)
	for i := range words {
		words[i] = fmt.Sprintf("word%d", i)
	}
	blocks := []types.ContentBlock{{Role: types.RoleGeneral, Lines: []string{strings.Join(words, " ")}}}

	session := NewSession(1.0)
	require.NoError(t, session.RenderBlocks(blocks))
	assert.Equal(t, 1, session.PageCount())
}

func TestRenderBlocks_SpillsToSecondPage(t *testing.T) {
	var lines []string
	for i := 0; i < 80; i++ {
		lines = append(lines, fmt.Sprintf("• Accomplishment number %d with enough words to matter", i))
	}
	blocks := []types.ContentBlock{{Role: types.RoleGeneral, Lines: lines}}

	session := NewSession(1.0)
	require.NoError(t, session.RenderBlocks(blocks))

	assert.Greater(t, session.PageCount(), 1)
	assert.Len(t, session.Placed(), 80, "a page break never skips content")
}

func TestRenderBlocks_KeepTogetherHeaderMovesToFreshPage(t *testing.T) {
	var filler []string
	for i := 0; i < 48; i++ {
		filler = append(filler, fmt.Sprintf("body line %d", i))
	}
	blocks := []types.ContentBlock{
		{Role: types.RoleGeneral, Lines: filler},
		{Role: types.RoleSectionHeader, Lines: []string{"EDUCATION", "BSc Computer Science", "MSc Distributed Systems"}},
	}

	session := NewSession(1.0)
	require.NoError(t, session.RenderBlocks(blocks))

	require.Equal(t, 2, session.PageCount())
	placed := strings.Join(session.Placed(), "\n")
	assert.Contains(t, placed, "EDUCATION")
	assert.Contains(t, placed, "MSc Distributed Systems")
}

func TestAppendRecoveredLines_PlacesOnNewPage(t *testing.T) {
	session := NewSession(1.0)
	require.NoError(t, session.RenderBlocks([]types.ContentBlock{
		{Role: types.RoleGeneral, Lines: []string{"original content"}},
	}))

	count, err := session.AppendRecoveredLines([]string{"lost line one", "", "lost line two"})
	require.NoError(t, err)
	assert.Equal(t, 2, count, "blank lines are not counted")
	assert.Equal(t, 2, session.PageCount())

	placed := strings.Join(session.Placed(), "\n")
	assert.Contains(t, placed, "lost line one")
	assert.Contains(t, placed, "lost line two")
}

func TestPlaceBox_CursorAccountsForSharedAdvance(t *testing.T) {
	session := NewSession(1.0)
	st := styleFor(types.RoleGeneral, 1.0)

	require.NoError(t, session.placeBox("boxed fallback text", st))

	// The shared per-segment advance must land the next baseline exactly one
	// text height below the cell, not a full extra line further down.
	nextBaseline := session.y + st.LineHeight()
	assert.InDelta(t, session.doc.GetY()+st.Size, nextBaseline, 0.01)
}

func TestStyleFor_AggressivenessScalesHeadings(t *testing.T) {
	standard := styleFor(types.RoleName, 1.0)
	dense := styleFor(types.RoleName, 0.9)
	assert.Greater(t, standard.Size, dense.Size)

	body := styleFor(types.RoleGeneral, 0.9)
	assert.Equal(t, styleFor(types.RoleGeneral, 1.0).Size, body.Size, "body size is not scaled")
}
