package main

import (
	"encoding/json"
	"fmt"
	"image/png"
	"os"

	"github.com/openfab/camfuse"
	"github.com/tdewolff/argp"
)

type Fuse struct {
	Scale  float64 `default:"10000" desc:"Clip-engine integer units per model unit"`
	NoArcs bool    `desc:"Disable arc reconstruction"`
	SVG    string  `short:"o" desc:"Output SVG file"`
	PNG    string  `desc:"Output PNG file"`
	Res    float64 `default:"20" desc:"PNG resolution in pixels per model unit"`
	Minify bool    `desc:"Minify SVG output"`
	Stats  bool    `short:"s" desc:"Print fusion statistics"`
	Input  string  `index:"0" desc:"Input board JSON file"`
}

func main() {
	root := argp.NewCmd(&Fuse{}, "Fuse PCB artwork into a boolean-merged, arc-preserving outline")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Fuse) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}

	board, err := readBoard(cmd.Input)
	if err != nil {
		return err
	}

	reg := camfuse.NewCurveRegistry()
	for _, c := range board.Curves {
		reg.Add(c.curve())
	}
	prims, err := board.primitives()
	if err != nil {
		return err
	}

	pipeline, err := camfuse.NewPipeline(reg, &camfuse.Options{
		Scale:           cmd.Scale,
		ReconstructArcs: !cmd.NoArcs,
	})
	if err != nil {
		return err
	}
	fused, err := pipeline.Fuse(prims)
	if err != nil {
		return err
	}

	if cmd.SVG != "" {
		f, err := os.Create(cmd.SVG)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := camfuse.WriteSVG(f, fused, &camfuse.SVGOptions{Minify: cmd.Minify}); err != nil {
			return err
		}
	}
	if cmd.PNG != "" {
		f, err := os.Create(cmd.PNG)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := png.Encode(f, camfuse.Rasterize(fused, cmd.Res)); err != nil {
			return err
		}
	}
	if cmd.Stats {
		stats := pipeline.Stats()
		fmt.Printf("primitives: %d in, %d out, %d skipped\n", stats.PrimitivesIn, stats.PrimitivesOut, stats.Skipped)
		fmt.Printf("strokes converted: %d\n", stats.StrokesConverted)
		fmt.Printf("holes detected: %d\n", stats.HolesDetected)
		fmt.Printf("curves reconstructed: %d\n", stats.CurvesReconstructed)
	}
	return nil
}

type boardFile struct {
	Curves []boardCurve `json:"curves"`
	Shapes []boardShape `json:"shapes"`
}

type boardCurve struct {
	ID   uint32  `json:"id"`
	Kind string  `json:"kind"`
	CX   float64 `json:"cx"`
	CY   float64 `json:"cy"`
	R    float64 `json:"r"`
	Dir  string  `json:"dir"`
}

type boardShape struct {
	Type     string         `json:"type"`
	Polarity string         `json:"polarity"`
	CX       float64        `json:"cx"`
	CY       float64        `json:"cy"`
	R        float64        `json:"r"`
	W        float64        `json:"w"`
	H        float64        `json:"h"`
	Start    float64        `json:"start"`
	End      float64        `json:"end"`
	CW       bool           `json:"cw"`
	Width    float64        `json:"width"`
	Closed   bool           `json:"closed"`
	Curve    uint32         `json:"curve"`
	Caps     [2]uint32      `json:"caps"`
	Points   [][2]float64   `json:"points"`
	P        [4][2]float64  `json:"p"`
	Contours []boardContour `json:"contours"`
}

type boardContour struct {
	Points [][2]float64 `json:"points"`
	Hole   bool         `json:"hole"`
}

func readBoard(filename string) (*boardFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	board := &boardFile{}
	if err := json.Unmarshal(data, board); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return board, nil
}

func (c boardCurve) curve() camfuse.Curve {
	curve := camfuse.Curve{
		ID:     c.ID,
		Center: camfuse.Point{X: c.CX, Y: c.CY},
		Radius: c.R,
	}
	switch c.Kind {
	case "arc":
		curve.Kind = camfuse.CurveArc
	case "endcap":
		curve.Kind = camfuse.CurveEndCap
	default:
		curve.Kind = camfuse.CurveCircle
	}
	switch c.Dir {
	case "cw":
		curve.Dir = camfuse.DirCW
	case "ccw":
		curve.Dir = camfuse.DirCCW
	}
	return curve
}

func (b *boardFile) primitives() ([]camfuse.Primitive, error) {
	var prims []camfuse.Primitive
	for i, s := range b.Shapes {
		var prim camfuse.Primitive
		switch s.Type {
		case "circle":
			circle := camfuse.NewCircle(camfuse.Point{X: s.CX, Y: s.CY}, s.R)
			circle.CurveID = s.Curve
			prim = circle
		case "rect":
			prim = camfuse.NewRectangle(camfuse.Point{X: s.CX, Y: s.CY}, s.W, s.H)
		case "obround":
			obround := camfuse.NewObround(camfuse.Point{X: s.CX, Y: s.CY}, s.W, s.H)
			obround.CapIDs = s.Caps
			prim = obround
		case "arc":
			arc := camfuse.NewArc(camfuse.Point{X: s.CX, Y: s.CY}, s.R, s.Start, s.End, s.CW, s.Width)
			arc.CurveID = s.Curve
			prim = arc
		case "bezier":
			prim = camfuse.NewBezier(
				camfuse.Point{X: s.P[0][0], Y: s.P[0][1]},
				camfuse.Point{X: s.P[1][0], Y: s.P[1][1]},
				camfuse.Point{X: s.P[2][0], Y: s.P[2][1]},
				camfuse.Point{X: s.P[3][0], Y: s.P[3][1]},
				s.Width)
		case "trace":
			path := camfuse.NewTrace(s.Width, vertices(s.Points)...)
			path.Closed = s.Closed
			prim = path
		case "path":
			var contours []*camfuse.Contour
			for _, c := range s.Contours {
				contour := camfuse.NewContour(vertices(c.Points)...)
				contour.Hole = c.Hole
				contours = append(contours, contour)
			}
			prim = camfuse.NewPath(contours...)
		default:
			return nil, fmt.Errorf("shape %d: unknown type %q", i, s.Type)
		}
		if pol, ok := camfuse.ParsePolarity(s.Polarity); ok {
			prim.SetPolarity(pol)
		}
		prims = append(prims, prim)
	}
	return prims, nil
}

func vertices(points [][2]float64) []camfuse.Vertex {
	vs := make([]camfuse.Vertex, len(points))
	for i, p := range points {
		vs[i] = camfuse.Vertex{Point: camfuse.Point{X: p[0], Y: p[1]}}
	}
	return vs
}
