// Package charts draws chart specs with gonum/plot.
package charts

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"saudicars/views"
)

var (
	histColor    = color.RGBA{R: 65, G: 105, B: 225, A: 255}
	kdeColor     = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	boxColor     = color.RGBA{R: 34, G: 139, B: 34, A: 255}
	barColor     = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	topBarColor  = color.RGBA{R: 68, G: 1, B: 84, A: 255}
	scatterColor = color.NRGBA{R: 255, G: 165, B: 0, A: 153}
	groupColor   = color.RGBA{R: 255, G: 228, B: 181, A: 255}
	nanColor     = color.RGBA{R: 200, G: 200, B: 200, A: 255}
)

// Render builds the plot for spec.
func Render(spec *views.ChartSpec) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = spec.Title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = spec.XLabel
	p.Y.Label.Text = spec.YLabel

	var err error
	switch spec.Kind {
	case views.KindHistogram:
		err = histogram(p, spec)
	case views.KindBoxplot:
		err = boxplot(p, spec)
	case views.KindCount, views.KindTop:
		err = bars(p, spec)
	case views.KindScatter:
		err = scatter(p, spec)
	case views.KindGroupedBoxplot:
		err = groupedBoxplot(p, spec)
	case views.KindCorrelation:
		err = heatmap(p, spec)
	default:
		err = fmt.Errorf("charts: unknown kind %q", spec.Kind)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// WritePNG renders spec as a PNG image of the given size.
func WritePNG(spec *views.ChartSpec, w io.Writer, width, height vg.Length) error {
	p, err := Render(spec)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("charts: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("charts: write png: %w", err)
	}
	return nil
}

// SavePNG renders spec to a PNG file, creating parent directories.
func SavePNG(spec *views.ChartSpec, path string, width, height vg.Length) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("charts: create output dir: %w", err)
	}
	p, err := Render(spec)
	if err != nil {
		return err
	}
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("charts: save %s: %w", path, err)
	}
	return nil
}

func histogram(p *plot.Plot, spec *views.ChartSpec) error {
	h, err := plotter.NewHist(plotter.Values(spec.Values), spec.Bins)
	if err != nil {
		return fmt.Errorf("charts: histogram: %w", err)
	}
	h.FillColor = histColor
	h.LineStyle.Width = vg.Points(0.5)
	p.Add(h)

	if len(spec.Density) > 0 {
		xys := make(plotter.XYs, len(spec.Density))
		for i, pt := range spec.Density {
			xys[i].X = pt.X
			xys[i].Y = pt.Y
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("charts: kde: %w", err)
		}
		line.Color = kdeColor
		line.Width = vg.Points(2)
		p.Add(line)
	}

	p.Add(plotter.NewGrid())
	return nil
}

func boxplot(p *plot.Plot, spec *views.ChartSpec) error {
	b, err := plotter.NewBoxPlot(vg.Points(40), 0, plotter.Values(spec.Values))
	if err != nil {
		return fmt.Errorf("charts: boxplot: %w", err)
	}
	b.Horizontal = true
	b.FillColor = boxColor
	p.Add(b)
	p.NominalY("")
	p.Add(plotter.NewGrid())
	return nil
}

func bars(p *plot.Plot, spec *views.ChartSpec) error {
	n := len(spec.Bars)
	values := make(plotter.Values, n)
	labels := make([]string, n)
	for i, c := range spec.Bars {
		// Horizontal charts list the first entry at the top.
		idx := i
		if spec.Horizontal {
			idx = n - 1 - i
		}
		values[idx] = float64(c.N)
		labels[idx] = c.Value
	}

	b, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return fmt.Errorf("charts: bars: %w", err)
	}
	b.LineStyle.Width = vg.Length(0)
	b.Horizontal = spec.Horizontal

	if spec.Horizontal {
		b.Color = topBarColor
		p.Add(b)
		p.NominalY(labels...)
	} else {
		b.Color = barColor
		p.Add(b)
		p.NominalX(labels...)
		if n > 6 {
			p.X.Tick.Label.Rotation = math.Pi / 4
			p.X.Tick.Label.YAlign = draw.YCenter
			p.X.Tick.Label.XAlign = draw.XRight
		}
	}
	p.Add(plotter.NewGrid())
	return nil
}

func scatter(p *plot.Plot, spec *views.ChartSpec) error {
	xys := make(plotter.XYs, len(spec.Points))
	for i, pt := range spec.Points {
		xys[i].X = pt.X
		xys[i].Y = pt.Y
	}
	s, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("charts: scatter: %w", err)
	}
	s.GlyphStyle.Color = scatterColor
	s.GlyphStyle.Radius = vg.Points(2.5)
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(s)
	p.Add(plotter.NewGrid())
	return nil
}

func groupedBoxplot(p *plot.Plot, spec *views.ChartSpec) error {
	names := make([]string, len(spec.Groups))
	for i, g := range spec.Groups {
		b, err := plotter.NewBoxPlot(vg.Points(20), float64(i), plotter.Values(g.Values))
		if err != nil {
			return fmt.Errorf("charts: boxplot %q: %w", g.Name, err)
		}
		b.Horizontal = true
		b.FillColor = groupColor
		p.Add(b)
		names[i] = g.Name
	}
	p.NominalY(names...)
	p.Add(plotter.NewGrid())
	return nil
}

// correlationGrid puts the first label on the top row.
type correlationGrid struct {
	m [][]float64
}

func (g correlationGrid) Dims() (c, r int)   { return len(g.m), len(g.m) }
func (g correlationGrid) Z(c, r int) float64 { return g.m[len(g.m)-1-r][c] }
func (g correlationGrid) X(c int) float64    { return float64(c) }
func (g correlationGrid) Y(r int) float64    { return float64(r) }

func heatmap(p *plot.Plot, spec *views.ChartSpec) error {
	n := len(spec.Matrix)
	if n == 0 || len(spec.Labels) != n {
		return fmt.Errorf("charts: correlation matrix is %d wide with %d labels", n, len(spec.Labels))
	}

	cmap := moreland.SmoothBlueRed()
	cmap.SetMin(-1)
	cmap.SetMax(1)

	grid := correlationGrid{m: spec.Matrix}
	hm := plotter.NewHeatMap(grid, cmap.Palette(255))
	hm.Min = -1
	hm.Max = 1
	hm.NaN = nanColor
	p.Add(hm)

	var xys plotter.XYs
	var texts []string
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			z := grid.Z(c, r)
			text := "nan"
			if !math.IsNaN(z) {
				text = fmt.Sprintf("%.2f", z)
			}
			xys = append(xys, plotter.XY{X: grid.X(c), Y: grid.Y(r)})
			texts = append(texts, text)
		}
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return fmt.Errorf("charts: heatmap labels: %w", err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].YAlign = draw.YCenter
	}
	p.Add(labels)

	rows := make([]string, n)
	for i, l := range spec.Labels {
		rows[n-1-i] = l
	}
	p.NominalX(spec.Labels...)
	p.NominalY(rows...)
	return nil
}
