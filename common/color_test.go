package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"#75D963", "#75d963"},
		{"#75caff", "#75caff"},
		{"0x99d98c", "#99d98c"},
		{"#fff", "#ffffff"},
		{"skyblue", "#87ceeb"},
		{"  SkyBlue ", "#87ceeb"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			c, err := ParseColor(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, c.String())
		})
	}
}

func TestParseColorInvalid(t *testing.T) {
	for _, in := range []string{"", "not-a-color", "#12345", "#gggggg"} {
		_, err := ParseColor(in)
		assert.Error(t, err, in)
	}
}

func TestColorLinear(t *testing.T) {
	c := Color{R: 0, G: 0.5, B: 1}.Linear()
	assert.InDelta(t, 0, c.R, 1e-6)
	assert.InDelta(t, 0.214, c.G, 1e-3)
	assert.InDelta(t, 1, c.B, 1e-6)
}

func TestColorText(t *testing.T) {
	var c Color
	require.NoError(t, c.UnmarshalText([]byte("#b5e48c")))
	b, err := c.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "#b5e48c", string(b))
	assert.Error(t, c.UnmarshalText([]byte("nope")))
}
