// Package plot renders the two-panel group comparison figure.
package plot

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"time"

	"gomwu/domain/stats"
	"gomwu/internal"
	"gomwu/internal/analysis"
	"gomwu/internal/errors"

	gonumplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Options controls figure size, resolution and axis labels
type Options struct {
	Width      vg.Length
	Height     vg.Length
	DPI        int
	GroupLabel string // x axis
	ValueLabel string // y axis
}

// DefaultOptions returns a 15x6 inch figure at 300 DPI
func DefaultOptions() Options {
	return Options{
		Width:      15 * vg.Inch,
		Height:     6 * vg.Inch,
		DPI:        300,
		GroupLabel: "Group",
		ValueLabel: "Value",
	}
}

const violinHalfWidth = 0.4

var (
	swarmColor = color.NRGBA{R: 64, G: 64, B: 64, A: 128}
	edgeColor  = color.Black
	dashes     = []vg.Length{vg.Points(4), vg.Points(2)}
)

// Renderer draws the box+swarm and violin panels into a PNG
type Renderer struct {
	opts   Options
	logger *internal.Logger
}

// NewRenderer creates a renderer. A nil logger discards output.
func NewRenderer(opts Options, logger *internal.Logger) *Renderer {
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	return &Renderer{opts: opts, logger: logger}
}

// Render writes the figure for samples to path
func (r *Renderer) Render(ctx context.Context, samples *analysis.GroupSamples, summary *stats.Summary, path string) error {
	if samples == nil || summary == nil {
		return errors.InvalidInput("nothing to plot")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()

	groups := [2][]float64{samples.Group1, samples.Group2}
	names := []string{samples.Group1Name, samples.Group2Name}
	quartiles := [2]stats.DescriptiveStats{summary.Group1, summary.Group2}

	left, err := r.boxSwarmPanel(groups, names, summary.Result.PValue)
	if err != nil {
		return errors.ComputationError("failed to build box plot panel", err)
	}
	right, err := r.violinPanel(groups, names, quartiles)
	if err != nil {
		return errors.ComputationError("failed to build violin panel", err)
	}

	img := vgimg.NewWith(vgimg.UseWH(r.opts.Width, r.opts.Height), vgimg.UseDPI(r.opts.DPI))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      1,
		Cols:      2,
		PadX:      vg.Millimeter * 10,
		PadTop:    vg.Millimeter * 4,
		PadBottom: vg.Millimeter * 4,
		PadLeft:   vg.Millimeter * 4,
		PadRight:  vg.Millimeter * 4,
	}
	plots := [][]*gonumplot.Plot{{left, right}}
	canvases := gonumplot.Align(plots, tiles, dc)
	for j, p := range plots[0] {
		p.Draw(canvases[0][j])
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.IOError("failed to create plot file", err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		f.Close()
		return errors.IOError("failed to encode plot", err)
	}
	if err := f.Close(); err != nil {
		return errors.IOError("failed to write plot file", err)
	}

	r.logger.Debug("[Renderer] %s written in %.2fms", path, float64(time.Since(start).Nanoseconds())/1e6)
	return nil
}

func (r *Renderer) newPanel(title string, names []string) *gonumplot.Plot {
	p := gonumplot.New()
	p.Title.Text = title
	p.X.Label.Text = r.opts.GroupLabel
	p.Y.Label.Text = r.opts.ValueLabel
	p.Add(plotter.NewGrid())
	p.NominalX(names...)
	p.X.Min, p.X.Max = -0.5, float64(len(names))-0.5
	return p
}

// boxSwarmPanel is panel (a): a box per group with the points overlaid
func (r *Renderer) boxSwarmPanel(groups [2][]float64, names []string, pValue float64) (*gonumplot.Plot, error) {
	p := r.newPanel(fmt.Sprintf("Distribution Comparison\np = %.4f", pValue), names)

	for i, values := range groups {
		loc := float64(i)
		box, err := plotter.NewBoxPlot(vg.Points(60), loc, plotter.Values(values))
		if err != nil {
			return nil, err
		}
		box.FillColor = plotutil.Color(i)
		p.Add(box)

		offsets := swarmOffsets(values)
		pts := make(plotter.XYs, len(values))
		for k, v := range values {
			pts[k].X = loc + offsets[k]
			pts[k].Y = v
		}
		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, err
		}
		scatter.GlyphStyle.Color = swarmColor
		scatter.GlyphStyle.Radius = vg.Points(2.5)
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(scatter)
	}
	return p, nil
}

// violinPanel is panel (b): mirrored KDE per group with dashed quartiles
func (r *Renderer) violinPanel(groups [2][]float64, names []string, quartiles [2]stats.DescriptiveStats) (*gonumplot.Plot, error) {
	p := r.newPanel("Distribution Density with Quartiles", names)

	for i, values := range groups {
		loc := float64(i)
		kde := estimateDensity(values)
		if kde == nil {
			// no spread to estimate; draw the single value as a bar
			bar, err := plotter.NewLine(plotter.XYs{
				{X: loc - violinHalfWidth, Y: values[0]},
				{X: loc + violinHalfWidth, Y: values[0]},
			})
			if err != nil {
				return nil, err
			}
			bar.LineStyle.Color = plotutil.Color(i)
			bar.LineStyle.Width = vg.Points(2)
			p.Add(bar)
			continue
		}

		scale := violinHalfWidth / kde.max()
		outline := make(plotter.XYs, 0, 2*len(kde.Y))
		for k := range kde.Y {
			outline = append(outline, plotter.XY{X: loc + kde.D[k]*scale, Y: kde.Y[k]})
		}
		for k := len(kde.Y) - 1; k >= 0; k-- {
			outline = append(outline, plotter.XY{X: loc - kde.D[k]*scale, Y: kde.Y[k]})
		}
		poly, err := plotter.NewPolygon(outline)
		if err != nil {
			return nil, err
		}
		poly.Color = plotutil.Color(i)
		poly.LineStyle.Color = edgeColor
		poly.LineStyle.Width = vg.Points(1)
		p.Add(poly)

		q := quartiles[i]
		for _, y := range []float64{q.Q25, q.Median, q.Q75} {
			half := kde.at(y) * scale
			line, err := plotter.NewLine(plotter.XYs{{X: loc - half, Y: y}, {X: loc + half, Y: y}})
			if err != nil {
				return nil, err
			}
			line.LineStyle.Color = edgeColor
			line.LineStyle.Dashes = dashes
			p.Add(line)
		}
	}
	return p, nil
}
