package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLikeContains_EscapesMetacharacters(t *testing.T) {
	assert.Equal(t, "%plain.jpg%", LikeContains("plain.jpg"))
	assert.Equal(t, "%100!%_off!_banner.jpg%", LikeContains("100%_off_banner.jpg"))
	assert.Equal(t, "%wow!!.jpg%", LikeContains("wow!.jpg"))
}

func TestLikeContains_EscapeCharIsNotBackslash(t *testing.T) {
	// A backslash escape character cannot appear in a portable ESCAPE
	// clause: MySQL string literals consume it before LIKE sees it.
	assert.NotEqual(t, `\`, LikeEscape)
	assert.NotContains(t, LikeContains(`dir\img.jpg`), `\\`)
}
