package camfuse

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestRasterize(t *testing.T) {
	pad := NewPath(square(0.0, 0.0, 2.0))
	img := Rasterize([]Primitive{pad}, 10.0)
	test.T(t, img.Bounds().Dx(), 20)
	test.T(t, img.Bounds().Dy(), 20)
	test.T(t, img.RGBAAt(10, 10).R, uint8(0))
}

func TestRasterizeClear(t *testing.T) {
	pad := NewPath(square(0.0, 0.0, 10.0))
	cut := NewCircle(Point{5, 5}, 2.0)
	cut.SetPolarity(Clear)

	img := Rasterize([]Primitive{pad, cut}, 10.0)
	test.T(t, img.Bounds().Dx(), 100)

	// the clear disc paints the pad back to white
	test.T(t, img.RGBAAt(50, 50).R, uint8(0xff))
	test.T(t, img.RGBAAt(10, 50).R, uint8(0))
}

func TestRasterizeEmpty(t *testing.T) {
	img := Rasterize(nil, 10.0)
	test.T(t, img.Bounds().Dx(), 1)
	test.T(t, img.Bounds().Dy(), 1)
}
