package prep

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"os"

	"github.com/golang/freetype"
	"github.com/llgcode/draw2d/draw2dimg"
	"gonum.org/v1/gonum/floats"
)

const plotMargin = 48.0

var (
	plotWhite = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	plotGray  = color.RGBA{R: 220, G: 220, B: 220, A: 255}
	plotBlack = color.RGBA{R: 20, G: 20, B: 20, A: 255}
	plotRed   = color.RGBA{R: 200, G: 40, B: 40, A: 255}
	plotGreen = color.RGBA{R: 40, G: 160, B: 60, A: 255}
)

// PlotWell renders one well's cleaned series as a red line with round
// markers and writes it to path as PNG.
func PlotWell(path string, name string, values []float64, cfg PlotConfig) error {
	if len(values) < 2 {
		return fmt.Errorf("well %s: need at least 2 points to plot, got %d", name, len(values))
	}
	img, err := newChart(cfg, name)
	if err != nil {
		return err
	}
	sc := newScale(cfg, len(values), values)
	drawSeries(img, sc, values, plotRed)
	return draw2dimg.SaveToPngFile(path, img)
}

// PlotWindow renders one window: the input followed by the output in green,
// with the input overlaid in red so the forecast horizon stands out.
func PlotWindow(path string, w Window, cfg PlotConfig) error {
	if len(w.Input) == 0 || len(w.Output) == 0 {
		return fmt.Errorf("window is empty")
	}
	full := make([]float64, 0, len(w.Input)+len(w.Output))
	full = append(full, w.Input...)
	full = append(full, w.Output...)

	img, err := newChart(cfg, "Window")
	if err != nil {
		return err
	}
	sc := newScale(cfg, len(full), full)
	drawSeries(img, sc, full, plotGreen)
	drawSeries(img, sc, w.Input, plotRed)
	return draw2dimg.SaveToPngFile(path, img)
}

// chartScale maps (index, value) to pixel coordinates.
type chartScale struct {
	x0, x1 float64
	y0, y1 float64
	count  int
	min    float64
	max    float64
}

func newScale(cfg PlotConfig, count int, values []float64) chartScale {
	min := floats.Min(values)
	max := floats.Max(values)
	if min == max {
		min -= 1
		max += 1
	}
	pad := (max - min) * 0.05
	return chartScale{
		x0:    plotMargin,
		x1:    float64(cfg.Width) - plotMargin,
		y0:    float64(cfg.Height) - plotMargin,
		y1:    plotMargin,
		count: count,
		min:   min - pad,
		max:   max + pad,
	}
}

func (s chartScale) at(i int, v float64) (float64, float64) {
	fx := 0.0
	if s.count > 1 {
		fx = float64(i) / float64(s.count-1)
	}
	fy := (v - s.min) / (s.max - s.min)
	return s.x0 + fx*(s.x1-s.x0), s.y0 + fy*(s.y1-s.y0)
}

func newChart(cfg PlotConfig, title string) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(plotWhite), image.Point{}, draw.Src)

	gc := draw2dimg.NewGraphicContext(img)

	// horizontal grid
	gc.SetStrokeColor(plotGray)
	gc.SetLineWidth(1)
	for i := 1; i < 10; i++ {
		y := plotMargin + float64(i)*(float64(cfg.Height)-2*plotMargin)/10
		gc.BeginPath()
		gc.MoveTo(plotMargin, y)
		gc.LineTo(float64(cfg.Width)-plotMargin, y)
		gc.Stroke()
	}

	// frame
	gc.SetStrokeColor(plotBlack)
	gc.SetLineWidth(1.5)
	gc.BeginPath()
	gc.MoveTo(plotMargin, plotMargin)
	gc.LineTo(float64(cfg.Width)-plotMargin, plotMargin)
	gc.LineTo(float64(cfg.Width)-plotMargin, float64(cfg.Height)-plotMargin)
	gc.LineTo(plotMargin, float64(cfg.Height)-plotMargin)
	gc.Close()
	gc.Stroke()

	if cfg.Font != "" && title != "" {
		if err := drawTitle(img, cfg.Font, title); err != nil {
			return nil, err
		}
	}
	return img, nil
}

func drawTitle(img *image.RGBA, fontPath string, title string) error {
	data, err := os.ReadFile(fontPath)
	if err != nil {
		return fmt.Errorf("read font %s: %w", fontPath, err)
	}
	font, err := freetype.ParseFont(data)
	if err != nil {
		return fmt.Errorf("parse font %s: %w", fontPath, err)
	}
	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(font)
	ctx.SetFontSize(20)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.NewUniform(plotBlack))
	if _, err := ctx.DrawString(title, freetype.Pt(int(plotMargin), int(plotMargin)-14)); err != nil {
		return fmt.Errorf("draw title: %w", err)
	}
	return nil
}

func drawSeries(img *image.RGBA, sc chartScale, values []float64, col color.RGBA) {
	gc := draw2dimg.NewGraphicContext(img)
	gc.SetStrokeColor(col)
	gc.SetFillColor(col)
	gc.SetLineWidth(2)

	gc.BeginPath()
	for i, v := range values {
		x, y := sc.at(i, v)
		if i == 0 {
			gc.MoveTo(x, y)
		} else {
			gc.LineTo(x, y)
		}
	}
	gc.Stroke()

	for i, v := range values {
		x, y := sc.at(i, v)
		gc.BeginPath()
		gc.ArcTo(x, y, 3, 3, 0, 2*math.Pi)
		gc.Close()
		gc.Fill()
	}
}
