package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRect_Dimensions(t *testing.T) {
	r := Rect{X0: 10, Y0: 700, X1: 110, Y1: 712}
	assert.Equal(t, 100.0, r.Width())
	assert.Equal(t, 12.0, r.Height())
}

func TestTextSpan_StyleFlags(t *testing.T) {
	s := TextSpan{Flags: FlagBold}
	assert.True(t, s.Bold())
	assert.False(t, s.Italic())

	s.Flags = FlagBold | FlagItalic
	assert.True(t, s.Bold())
	assert.True(t, s.Italic())
}

func TestLineRole_KeepTogether(t *testing.T) {
	assert.True(t, RoleName.KeepTogether())
	assert.True(t, RoleSectionHeader.KeepTogether())
	assert.True(t, RoleJobTitle.KeepTogether())
	assert.False(t, RoleBullet.KeepTogether())
	assert.False(t, RoleGeneral.KeepTogether())
}

func TestContentBlock_Text(t *testing.T) {
	b := ContentBlock{Role: RoleGeneral, Lines: []string{"first", "second"}}
	assert.Equal(t, "first\nsecond", b.Text())
}
