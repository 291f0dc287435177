package classify

import (
	"strings"

	"github.com/jonathan/resume-atsfix/internal/types"
)

// BuildBlocks groups classified lines into content blocks. A block opens at
// every Name, SectionHeader, or JobTitle line and absorbs subsequent lines
// until the next opener; leading lines before any opener form a General
// block. Every input line lands in exactly one block, in order — rendering
// validation depends on this coverage holding.
func BuildBlocks(lines []string) []types.ContentBlock {
	roles := ClassifyLines(lines)

	var blocks []types.ContentBlock
	var cur *types.ContentBlock

	for i, line := range lines {
		role := roles[i]
		if role.StartsBlock() || cur == nil {
			if cur != nil {
				blocks = append(blocks, *cur)
			}
			blockRole := role
			if !role.StartsBlock() {
				blockRole = types.RoleGeneral
			}
			cur = &types.ContentBlock{Role: blockRole, StartLine: i}
		}
		cur.Lines = append(cur.Lines, line)
	}
	if cur != nil {
		blocks = append(blocks, *cur)
	}
	return blocks
}

// SplitLines breaks text into lines, normalizing Windows line endings.
func SplitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
