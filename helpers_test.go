package camfuse

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// plotContours draws the given contours to an image file, handy when a
// reconstruction test fails and the numbers alone don't tell why.
func plotContours(filename string, contours ...*Contour) error {
	p := plot.New()
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	for i, c := range contours {
		if len(c.Points) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(c.Points)+1)
		for j, q := range c.Points {
			xys[j].X = q.X
			xys[j].Y = q.Y
		}
		xys[len(c.Points)] = xys[0]

		line, scatter, err := plotter.NewLinePoints(xys)
		if err != nil {
			return err
		}
		gray := color.Gray{uint8(i * 64 % 192)}
		line.LineStyle.Color = gray
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		scatter.GlyphStyle.Radius = 2.0
		scatter.GlyphStyle.Color = gray
		p.Add(line, scatter)
	}
	return p.Save(7*vg.Inch, 7*vg.Inch, filename)
}
