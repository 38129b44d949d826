package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEngineWindow_HandleResize(t *testing.T) {
	w := &engineWindow{width: 1280, height: 720}

	var got [][2]int
	w.SetResizeCallback(func(width, height int) {
		got = append(got, [2]int{width, height})
	})
	w.handleResize(800, 600)
	w.handleResize(0, 0)

	assert.Equal(t, [][2]int{{800, 600}, {0, 0}}, got)
	assert.Equal(t, 0, w.Width())
	assert.Equal(t, 0, w.Height())
}

func TestEngineWindow_HandleKey(t *testing.T) {
	w := &engineWindow{closeKey: defaultCloseKey}
	assert.True(t, w.handleKey(defaultCloseKey))
	assert.False(t, w.handleKey(defaultCloseKey+1))

	w.SetCloseKey(0)
	assert.False(t, w.handleKey(defaultCloseKey))
	assert.False(t, w.handleKey(0))
}

func TestEngineWindow_Uninitialized(t *testing.T) {
	w := &engineWindow{}
	assert.False(t, w.IsRunning())
	assert.False(t, w.PollEvents())
	assert.Nil(t, w.SurfaceDescriptor())
	assert.Error(t, w.Close())
}

func TestBuilderOptions(t *testing.T) {
	w := &engineWindow{}
	for _, opt := range []WindowBuilderOption{
		WithTitle("portal"), WithWidth(640), WithHeight(480),
		WithMinWidth(100), WithMinHeight(50), WithMaxWidth(4000), WithMaxHeight(3000), WithCloseKey(81),
	} {
		opt(w)
	}
	assert.Equal(t, "portal", w.title)
	assert.Equal(t, 640, w.width)
	assert.Equal(t, 480, w.height)
	assert.Equal(t, 100, w.minWidth)
	assert.Equal(t, 50, w.minHeight)
	assert.Equal(t, 4000, w.maxWidth)
	assert.Equal(t, 3000, w.maxHeight)
	assert.Equal(t, 81, w.closeKey)
}
