package viewer

import "github.com/Carmen-Shannon/oxy-portal/common"

// Viewport is the drawable size in pixels. Only resize events change it.
type Viewport struct {
	Width, Height int
}

// Valid reports whether both dimensions are positive.
func (v Viewport) Valid() bool {
	return v.Width > 0 && v.Height > 0
}

// Aspect returns width over height.
func (v Viewport) Aspect() float32 {
	return common.Size{Width: v.Width, Height: v.Height}.Aspect()
}
