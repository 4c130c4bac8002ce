// Package export writes bias charts for an issue.
//
// The chart has one group per perspective with two bars: the share of
// paragraphs flagged for lexical bias and the share flagged for
// informational bias. SVG and PNG share one layout.
package export

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"git.sr.ht/~sbinet/gg"
	svg "github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"

	"github.com/biasaware/biasview/pkg/analysis"
)

// Chart dimensions in pixels
const (
	ChartWidth  = 640
	ChartHeight = 360

	marginTop    = 48
	marginBottom = 56
	marginSide   = 40
	barWidth     = 48
	barGap       = 8
)

const (
	lexicalFill       = "#FACC15"
	informationalFill = "#F87171"
	axisStroke        = "#6B7280"
	textFill          = "#111827"
)

type bar struct {
	x, y, w, h int
	fill       string
}

type label struct {
	x, y int
	text string
}

type layout struct {
	title  string
	bars   []bar
	labels []label
	axisY  int
}

func compute(ib analysis.IssueBias) layout {
	l := layout{
		title: fmt.Sprintf("%s: share of biased paragraphs", ib.Title),
		axisY: ChartHeight - marginBottom,
	}
	plotHeight := l.axisY - marginTop

	groups := len(ib.Articles)
	if groups == 0 {
		return l
	}
	slot := (ChartWidth - 2*marginSide) / groups

	for i, ab := range ib.Articles {
		groupLeft := marginSide + i*slot + (slot-(2*barWidth+barGap))/2
		for j, v := range []float64{ab.LexicalRate, ab.InformationalRate} {
			h := int(v * float64(plotHeight))
			fill := lexicalFill
			if j == 1 {
				fill = informationalFill
			}
			l.bars = append(l.bars, bar{
				x:    groupLeft + j*(barWidth+barGap),
				y:    l.axisY - h,
				w:    barWidth,
				h:    h,
				fill: fill,
			})
		}
		l.labels = append(l.labels, label{
			x:    marginSide + i*slot + slot/2,
			y:    l.axisY + 20,
			text: fmt.Sprintf("%s (%d/%d)", ab.Perspective, ab.Flagged, ab.Paragraphs),
		})
	}
	return l
}

// WriteSVG renders the chart as SVG
func WriteSVG(w io.Writer, ib analysis.IssueBias) error {
	l := compute(ib)
	canvas := svg.New(w)
	canvas.Start(ChartWidth, ChartHeight)
	canvas.Rect(0, 0, ChartWidth, ChartHeight, "fill:#FFFFFF")
	canvas.Text(ChartWidth/2, marginTop/2, l.title,
		"text-anchor:middle;font-family:sans-serif;font-size:16px;fill:"+textFill)
	for _, b := range l.bars {
		canvas.Rect(b.x, b.y, b.w, b.h, "fill:"+b.fill)
	}
	canvas.Line(marginSide, l.axisY, ChartWidth-marginSide, l.axisY, "stroke:"+axisStroke)
	for _, lb := range l.labels {
		canvas.Text(lb.x, lb.y, lb.text,
			"text-anchor:middle;font-family:sans-serif;font-size:12px;fill:"+textFill)
	}
	legend(canvas)
	canvas.End()
	return nil
}

func legend(canvas *svg.SVG) {
	y := ChartHeight - 16
	canvas.Rect(marginSide, y-10, 10, 10, "fill:"+lexicalFill)
	canvas.Text(marginSide+16, y, "Lexical Bias", "font-family:sans-serif;font-size:11px;fill:"+textFill)
	canvas.Rect(marginSide+120, y-10, 10, 10, "fill:"+informationalFill)
	canvas.Text(marginSide+136, y, "Informational Bias", "font-family:sans-serif;font-size:11px;fill:"+textFill)
}

// WritePNG renders the chart as PNG
func WritePNG(w io.Writer, ib analysis.IssueBias) error {
	l := compute(ib)
	dc := gg.NewContext(ChartWidth, ChartHeight)
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(color.White)
	dc.Clear()

	dc.SetColor(hexColor(textFill))
	dc.DrawStringAnchored(l.title, ChartWidth/2, marginTop/2, 0.5, 0.5)

	for _, b := range l.bars {
		dc.SetColor(hexColor(b.fill))
		dc.DrawRectangle(float64(b.x), float64(b.y), float64(b.w), float64(b.h))
		dc.Fill()
	}

	dc.SetColor(hexColor(axisStroke))
	dc.SetLineWidth(1)
	dc.DrawLine(marginSide, float64(l.axisY), ChartWidth-marginSide, float64(l.axisY))
	dc.Stroke()

	dc.SetColor(hexColor(textFill))
	for _, lb := range l.labels {
		dc.DrawStringAnchored(lb.text, float64(lb.x), float64(lb.y), 0.5, 0.5)
	}

	y := float64(ChartHeight - 16)
	for i, item := range []struct{ fill, text string }{
		{lexicalFill, "Lexical Bias"},
		{informationalFill, "Informational Bias"},
	} {
		x := float64(marginSide + i*120)
		dc.SetColor(hexColor(item.fill))
		dc.DrawRectangle(x, y-10, 10, 10)
		dc.Fill()
		dc.SetColor(hexColor(textFill))
		dc.DrawString(item.text, x+16, y)
	}

	return dc.EncodePNG(w)
}

// WriteFile renders the chart to path, choosing the format from the extension
func WriteFile(path string, ib analysis.IssueBias) error {
	var write func(io.Writer, analysis.IssueBias) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		write = WriteSVG
	case ".png":
		write = WritePNG
	default:
		return fmt.Errorf("unsupported chart format %q (use .svg or .png)", filepath.Ext(path))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := write(f, ib); err != nil {
		f.Close()
		return fmt.Errorf("render chart: %w", err)
	}
	return f.Close()
}

func hexColor(s string) color.RGBA {
	var r, g, b uint8
	fmt.Sscanf(strings.TrimPrefix(s, "#"), "%02x%02x%02x", &r, &g, &b)
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
