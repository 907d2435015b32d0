package camfuse

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"
)

// Rasterize renders the primitives to a new image at the given resolution in
// pixels per model unit, for visual inspection of any pipeline stage. Dark
// fills black on white; Clear fills white. Holes wind opposite their outer
// and cancel in the rasterizer's coverage accumulation.
func Rasterize(prims []Primitive, resolution float64) *image.RGBA {
	bounds := Rect{}
	for _, prim := range prims {
		bounds = bounds.Add(prim.Bounds())
	}
	w := int(bounds.W*resolution + 0.5)
	h := int(bounds.H*resolution + 0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}

	// Model coordinates are y-up; images are y-down.
	tx := func(p Point) (float32, float32) {
		return float32((p.X - bounds.X) * resolution), float32((bounds.Y + bounds.H - p.Y) * resolution)
	}
	for _, prim := range prims {
		c := color.RGBA{0x00, 0x00, 0x00, 0xff}
		if prim.Polarity() == Clear {
			c = color.RGBA{0xff, 0xff, 0xff, 0xff}
		}
		ras := vector.NewRasterizer(w, h)
		switch s := prim.(type) {
		case *Circle:
			n := circleSegments(s.Radius, 0.5/resolution)
			for i := 0; i <= n; i++ {
				theta := 2.0 * math.Pi * float64(i) / float64(n)
				x, y := tx(s.Center.Add(Point{s.Radius * math.Cos(theta), s.Radius * math.Sin(theta)}))
				if i == 0 {
					ras.MoveTo(x, y)
				} else {
					ras.LineTo(x, y)
				}
			}
			ras.ClosePath()
		case *Path:
			for _, contour := range s.Contours {
				pts := contour.Dense(0.5 / resolution)
				if len(pts) < 3 {
					continue
				}
				for i, p := range pts {
					x, y := tx(p)
					if i == 0 {
						ras.MoveTo(x, y)
					} else {
						ras.LineTo(x, y)
					}
				}
				ras.ClosePath()
			}
		default:
			continue
		}
		ras.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{})
	}
	return img
}
