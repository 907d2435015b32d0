package camfuse

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/tdewolff/minify/v2"
	minifysvg "github.com/tdewolff/minify/v2/svg"
)

// SVGOptions configures WriteSVG. The zero value writes plain SVG.
type SVGOptions struct {
	Minify bool
}

// WriteSVG writes the primitives as an SVG document for visual inspection of
// any pipeline stage. Dark primitives fill black, Clear primitives white.
// Reconstructed arc segments are written as SVG arc commands instead of the
// dense point runs they replaced.
func WriteSVG(w io.Writer, prims []Primitive, opts *SVGOptions) error {
	if opts != nil && opts.Minify {
		m := minify.New()
		m.AddFunc("image/svg+xml", minifysvg.Minify)
		mw := m.Writer("image/svg+xml", w)
		if err := writeSVG(mw, prims); err != nil {
			mw.Close()
			return err
		}
		return mw.Close()
	}
	return writeSVG(w, prims)
}

func writeSVG(w io.Writer, prims []Primitive) error {
	bounds := Rect{}
	for _, prim := range prims {
		bounds = bounds.Add(prim.Bounds())
	}
	// Model coordinates are y-up; SVG is y-down. Mirror by writing -y and
	// flipping the viewBox.
	if _, err := fmt.Fprintf(w, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%g %g %g %g">`,
		bounds.X, -(bounds.Y + bounds.H), bounds.W, bounds.H); err != nil {
		return err
	}
	for _, prim := range prims {
		fill := "#000"
		if prim.Polarity() == Clear {
			fill = "#fff"
		}
		switch s := prim.(type) {
		case *Circle:
			if _, err := fmt.Fprintf(w, `<circle cx="%g" cy="%g" r="%g" fill="%s"/>`,
				s.Center.X, -s.Center.Y, s.Radius, fill); err != nil {
				return err
			}
		case *Path:
			var sb strings.Builder
			for _, contour := range s.Contours {
				writeContourData(&sb, contour)
			}
			if sb.Len() == 0 {
				continue
			}
			if _, err := fmt.Fprintf(w, `<path d="%s" fill="%s" fill-rule="nonzero"/>`, sb.String(), fill); err != nil {
				return err
			}
		}
	}
	_, err := io.WriteString(w, "</svg>")
	return err
}

func writeContourData(sb *strings.Builder, c *Contour) {
	n := len(c.Points)
	if n < 3 && len(c.Arcs) == 0 || n < 2 {
		return
	}
	arcFrom := map[int]ArcSegment{}
	for _, a := range c.Arcs {
		arcFrom[a.Start] = a
	}
	fmt.Fprintf(sb, "M%g %g", c.Points[0].X, -c.Points[0].Y)
	for i := 1; i < n; i++ {
		if a, ok := arcFrom[i-1]; ok && a.End == i {
			writeArcData(sb, a, c.Points[i].Point)
		} else {
			fmt.Fprintf(sb, "L%g %g", c.Points[i].X, -c.Points[i].Y)
		}
	}
	if a, ok := arcFrom[n-1]; ok && a.End == 0 {
		writeArcData(sb, a, c.Points[0].Point)
	}
	sb.WriteByte('z')
}

func writeArcData(sb *strings.Builder, a ArcSegment, end Point) {
	large := 0
	if math.Pi < math.Abs(a.Sweep) {
		large = 1
	}
	// The y-mirror reverses the rotation sense: a model-CW arc runs along
	// SVG's positive-angle direction.
	sweep := 0
	if a.CW {
		sweep = 1
	}
	fmt.Fprintf(sb, "A%g %g 0 %d %d %g %g", a.Radius, a.Radius, large, sweep, end.X, -end.Y)
}
