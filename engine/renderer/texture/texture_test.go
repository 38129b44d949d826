package texture

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAssignsUniqueIDs(t *testing.T) {
	a := New("a", 4, 2, nil)
	b := New("b", 4, 2, nil)

	assert.NotZero(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 4, a.Width)
	assert.Equal(t, 2, a.Height)
	assert.Equal(t, "a", a.Label)
}
