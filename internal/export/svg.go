// Package export renders a floor plan into a standalone SVG document.
package export

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/jaajung-kjs/digital-sub000/internal/editor"
	"github.com/jaajung-kjs/digital-sub000/internal/floorplan"
)

type Options struct {
	// Grid draws the snapping grid behind the plan content.
	Grid bool
}

const (
	gridStroke    = "#e0e0e0"
	rackFill      = "#f5f5f5"
	rackFontSize  = 12.0
	textBaseline  = 1.0 // baseline offset in font-size units below the anchor
	defaultStroke = floorplan.DefaultStroke
)

// Render draws the plan in its canvas coordinate system. Paint order matches
// the editor: elements by z-index, racks above them, text labels on top.
func Render(p *floorplan.Plan, opts Options) []byte {
	var b bytes.Buffer

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`,
		num(p.CanvasWidth), num(p.CanvasHeight), num(p.CanvasWidth), num(p.CanvasHeight))
	b.WriteByte('\n')

	background := p.Background
	if background == "" {
		background = floorplan.DefaultBackground
	}
	fmt.Fprintf(&b, `<rect width="100%%" height="100%%" fill="%s"/>`, escape(background))
	b.WriteByte('\n')

	if opts.Grid && p.GridSize > 0 {
		writeGrid(&b, p)
	}

	dl := editor.BuildDisplayList(p.Elements, p.Racks)
	for _, el := range dl.Under {
		writeElement(&b, el)
	}
	for _, r := range dl.Racks {
		writeRack(&b, r)
	}
	for _, el := range dl.Text {
		writeElement(&b, el)
	}

	b.WriteString("</svg>\n")
	return b.Bytes()
}

func writeGrid(b *bytes.Buffer, p *floorplan.Plan) {
	var d strings.Builder
	for x := p.GridSize; x < p.CanvasWidth; x += p.GridSize {
		fmt.Fprintf(&d, "M%s 0V%s", num(x), num(p.CanvasHeight))
	}
	for y := p.GridSize; y < p.CanvasHeight; y += p.GridSize {
		fmt.Fprintf(&d, "M0 %sH%s", num(y), num(p.CanvasWidth))
	}
	fmt.Fprintf(b, `<path d="%s" fill="none" stroke="%s" stroke-width="0.5"/>`, d.String(), gridStroke)
	b.WriteByte('\n')
}

func writeElement(b *bytes.Buffer, el floorplan.Element) {
	switch s := el.Shape.(type) {
	case floorplan.LineShape:
		writeLine(b, s)
	case floorplan.RectShape:
		writeRect(b, s)
	case floorplan.CircleShape:
		writeCircle(b, s)
	case floorplan.DoorShape:
		writeDoor(b, s)
	case floorplan.WindowShape:
		writeWindow(b, s)
	case floorplan.TextShape:
		writeText(b, s)
	}
}

func writeLine(b *bytes.Buffer, s floorplan.LineShape) {
	if len(s.Points) < 2 {
		return
	}
	pts := make([]string, len(s.Points))
	for i, p := range s.Points {
		pts[i] = num(p.X) + "," + num(p.Y)
	}
	fmt.Fprintf(b, `<polyline points="%s" fill="none" stroke="%s" stroke-width="%s" stroke-linecap="round" stroke-linejoin="round"/>`,
		strings.Join(pts, " "), escape(s.Stroke), num(s.StrokeWidth))
	b.WriteByte('\n')
}

func writeRect(b *bytes.Buffer, s floorplan.RectShape) {
	fmt.Fprintf(b, `<rect x="%s" y="%s" width="%s" height="%s"`,
		num(s.X), num(s.Y), num(s.Width), num(s.Height))
	if s.CornerRadius > 0 {
		fmt.Fprintf(b, ` rx="%s"`, num(s.CornerRadius))
	}
	fmt.Fprintf(b, ` fill="%s" stroke="%s" stroke-width="%s"`,
		fillValue(s.Fill), escape(s.Stroke), num(s.StrokeWidth))
	writeTransform(b, boxTransform(s.X, s.Y, s.Width, s.Height, s.Rotation, s.FlipH, s.FlipV))
	b.WriteString("/>\n")
}

func writeCircle(b *bytes.Buffer, s floorplan.CircleShape) {
	fmt.Fprintf(b, `<circle cx="%s" cy="%s" r="%s" fill="%s" stroke="%s" stroke-width="%s"/>`,
		num(s.CX), num(s.CY), num(s.Radius), fillValue(s.Fill), escape(s.Stroke), num(s.StrokeWidth))
	b.WriteByte('\n')
}

// writeDoor draws the standard plan symbol: the frame box, the opened leaf
// hinged at the frame's bottom-left corner, and the quarter-circle swing arc
// back to the closed position.
func writeDoor(b *bytes.Buffer, s floorplan.DoorShape) {
	hx, hy := s.X, s.Y+s.Height

	b.WriteString("<g")
	writeTransform(b, boxTransform(s.X, s.Y, s.Width, s.Height, s.Rotation, s.FlipH, s.FlipV))
	fmt.Fprintf(b, ` fill="none" stroke="%s" stroke-width="%s">`, escape(s.Stroke), num(s.StrokeWidth))
	fmt.Fprintf(b, `<rect x="%s" y="%s" width="%s" height="%s"/>`,
		num(s.X), num(s.Y), num(s.Width), num(s.Height))
	fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s"/>`,
		num(hx), num(hy), num(hx), num(hy+s.Width))
	fmt.Fprintf(b, `<path d="M%s %sA%s %s 0 0 0 %s %s"/>`,
		num(hx), num(hy+s.Width), num(s.Width), num(s.Width), num(hx+s.Width), num(hy))
	b.WriteString("</g>\n")
}

// writeWindow draws the frame box with the glass line through the middle.
func writeWindow(b *bytes.Buffer, s floorplan.WindowShape) {
	b.WriteString("<g")
	writeTransform(b, boxTransform(s.X, s.Y, s.Width, s.Height, s.Rotation, s.FlipH, s.FlipV))
	fmt.Fprintf(b, ` fill="none" stroke="%s" stroke-width="%s">`, escape(s.Stroke), num(s.StrokeWidth))
	fmt.Fprintf(b, `<rect x="%s" y="%s" width="%s" height="%s"/>`,
		num(s.X), num(s.Y), num(s.Width), num(s.Height))
	fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s"/>`,
		num(s.X), num(s.Y+s.Height/2), num(s.X+s.Width), num(s.Y+s.Height/2))
	b.WriteString("</g>\n")
}

func writeText(b *bytes.Buffer, s floorplan.TextShape) {
	fontSize := s.FontSize
	if fontSize <= 0 {
		fontSize = floorplan.DefaultFontSize
	}
	fmt.Fprintf(b, `<text x="%s" y="%s" font-family="sans-serif" font-size="%s" fill="%s"`,
		num(s.X), num(s.Y+fontSize*textBaseline), num(fontSize), defaultStroke)
	if s.FontWeight == floorplan.WeightBold {
		b.WriteString(` font-weight="bold"`)
	}
	switch s.Align {
	case floorplan.AlignCenter:
		b.WriteString(` text-anchor="middle"`)
	case floorplan.AlignRight:
		b.WriteString(` text-anchor="end"`)
	}
	if s.Rotation != 0 {
		fmt.Fprintf(b, ` transform="rotate(%s %s %s)"`, num(s.Rotation), num(s.X), num(s.Y))
	}
	fmt.Fprintf(b, ">%s</text>\n", escape(s.Content))
}

func writeRack(b *bytes.Buffer, r floorplan.Rack) {
	c := r.Center()
	cx, cy := c.X, c.Y

	b.WriteString("<g")
	if r.Rotation != 0 {
		fmt.Fprintf(b, ` transform="rotate(%s %s %s)"`, num(r.Rotation), num(cx), num(cy))
	}
	b.WriteString(">")
	fmt.Fprintf(b, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s" stroke="%s" stroke-width="2"/>`,
		num(r.X), num(r.Y), num(r.Width), num(r.Height), rackFill, defaultStroke)
	fmt.Fprintf(b, `<text x="%s" y="%s" dy=".35em" font-family="sans-serif" font-size="%s" text-anchor="middle" fill="%s">%s</text>`,
		num(cx), num(cy), num(rackFontSize), defaultStroke, escape(r.Name))
	b.WriteString("</g>\n")
}

func boxTransform(x, y, w, h, rotation float64, flipH, flipV bool) string {
	cx, cy := x+w/2, y+h/2
	var parts []string
	if rotation != 0 {
		parts = append(parts, fmt.Sprintf("rotate(%s %s %s)", num(rotation), num(cx), num(cy)))
	}
	if flipH || flipV {
		sx, sy := "1", "1"
		if flipH {
			sx = "-1"
		}
		if flipV {
			sy = "-1"
		}
		parts = append(parts, fmt.Sprintf("translate(%s %s) scale(%s %s) translate(%s %s)",
			num(cx), num(cy), sx, sy, num(-cx), num(-cy)))
	}
	return strings.Join(parts, " ")
}

func writeTransform(b *bytes.Buffer, transform string) {
	if transform != "" {
		fmt.Fprintf(b, ` transform="%s"`, transform)
	}
}

// fillValue maps the app's transparent sentinel onto SVG's "none".
func fillValue(fill string) string {
	if fill == "" || fill == floorplan.FillTransparent {
		return "none"
	}
	return escape(fill)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escape(s string) string {
	return escaper.Replace(s)
}

// Filename turns a plan name into a safe download filename.
func Filename(name string) string {
	base := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '-'
		default:
			return -1
		}
	}, name)
	if base == "" {
		base = "plan"
	}
	return base + ".svg"
}
