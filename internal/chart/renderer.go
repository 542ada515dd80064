package chart

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/bsujalnaik/GoogleHackathon/internal/domain"
)

const (
	defaultChartWidth  = 640
	defaultChartHeight = 640
	maxDonutSegments   = 12
)

var (
	colBackground = color.RGBA{R: 30, G: 30, B: 30, A: 255}
	colGrid       = color.RGBA{R: 52, G: 56, B: 60, A: 255}
	colHole       = color.RGBA{R: 30, G: 30, B: 30, A: 255}
	colAxis       = color.RGBA{R: 104, G: 112, B: 120, A: 255}

	// first entry matches the product accent; the rest cycle for extra slices
	segmentPalette = []color.RGBA{
		{R: 32, G: 212, B: 170, A: 255},
		{R: 62, G: 106, B: 214, A: 255},
		{R: 255, G: 149, B: 0, A: 255},
		{R: 210, G: 61, B: 87, A: 255},
		{R: 148, G: 104, B: 214, A: 255},
		{R: 232, G: 196, B: 76, A: 255},
	}
)

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// ImageData is a rendered chart ready to stream.
type ImageData struct {
	MimeType string
	Width    int
	Height   int
	Bytes    []byte
}

// RenderAllocation draws a donut of the portfolio's priced holdings.
// Unpriced holdings carry zero allocation and are skipped; holdings past
// the segment cap are folded into one remainder slice.
func (r *Renderer) RenderAllocation(v domain.Valuation) (*ImageData, error) {
	type slice struct {
		fraction float64
		col      color.RGBA
	}
	slices := make([]slice, 0, len(v.Holdings))
	var total float64
	for _, h := range v.Holdings {
		if h.Allocation <= 0 {
			continue
		}
		total += h.Allocation
		if len(slices) < maxDonutSegments {
			slices = append(slices, slice{
				fraction: h.Allocation,
				col:      segmentPalette[len(slices)%len(segmentPalette)],
			})
		} else {
			slices[len(slices)-1].fraction += h.Allocation
		}
	}
	if len(slices) == 0 || total <= 0 {
		return nil, fmt.Errorf("no priced holdings to chart")
	}

	img := image.NewRGBA(image.Rect(0, 0, defaultChartWidth, defaultChartHeight))
	fillRect(img, img.Bounds(), colBackground)

	cx := defaultChartWidth / 2
	cy := defaultChartHeight / 2
	outer := float64(defaultChartWidth) * 0.38
	inner := outer * 0.55

	// cumulative angle per slice, starting at 12 o'clock
	starts := make([]float64, len(slices)+1)
	var acc float64
	for i, s := range slices {
		starts[i] = acc
		acc += (s.fraction / total) * 2 * math.Pi
	}
	starts[len(slices)] = 2 * math.Pi

	for y := 0; y < defaultChartHeight; y++ {
		for x := 0; x < defaultChartWidth; x++ {
			dx := float64(x - cx)
			dy := float64(y - cy)
			dist := math.Hypot(dx, dy)
			if dist > outer || dist < inner {
				continue
			}
			angle := math.Atan2(dx, -dy)
			if angle < 0 {
				angle += 2 * math.Pi
			}
			for i := range slices {
				if angle >= starts[i] && angle < starts[i+1] {
					img.SetRGBA(x, y, slices[i].col)
					break
				}
			}
		}
	}
	fillCircle(img, cx, cy, int(inner)-1, colHole)

	return encode(img)
}

// RenderSuggestions draws a bar per deduction section, scaled to the
// largest projected saving.
func (r *Renderer) RenderSuggestions(suggestions []domain.TaxSuggestion) (*ImageData, error) {
	if len(suggestions) == 0 {
		return nil, fmt.Errorf("no suggestions to chart")
	}

	img := image.NewRGBA(image.Rect(0, 0, defaultChartWidth, defaultChartHeight))
	fillRect(img, img.Bounds(), colBackground)

	rect := image.Rect(60, 40, defaultChartWidth-40, defaultChartHeight-60)
	drawGrid(img, rect, 1, 5)

	maxSaved := suggestions[0].TaxSaved
	for _, s := range suggestions {
		if s.TaxSaved > maxSaved {
			maxSaved = s.TaxSaved
		}
	}
	if maxSaved <= 0 {
		maxSaved = 1
	}

	slot := rect.Dx() / len(suggestions)
	barW := max(4, (slot*6)/10)
	for i, s := range suggestions {
		x := rect.Min.X + i*slot + slot/2
		top := mapValueToY(s.TaxSaved, 0, maxSaved, rect)
		col := segmentPalette[i%len(segmentPalette)]
		fillRect(img, image.Rect(x-barW/2, top, x+barW/2+1, rect.Max.Y), col)
	}
	drawLine(img, rect.Min.X, rect.Max.Y, rect.Max.X, rect.Max.Y, colAxis)

	return encode(img)
}

func encode(img *image.RGBA) (*ImageData, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return &ImageData{
		MimeType: "image/png",
		Width:    defaultChartWidth,
		Height:   defaultChartHeight,
		Bytes:    buf.Bytes(),
	}, nil
}

func mapValueToY(value, minV, maxV float64, rect image.Rectangle) int {
	if maxV <= minV {
		return rect.Max.Y
	}
	ratio := (value - minV) / (maxV - minV)
	ratio = math.Max(0, math.Min(1, ratio))
	return rect.Max.Y - int(ratio*float64(rect.Dy()-1))
}

func drawGrid(img *image.RGBA, rect image.Rectangle, verticalLines, horizontalLines int) {
	for i := 0; i <= verticalLines; i++ {
		x := rect.Min.X + (rect.Dx()*i)/max(1, verticalLines)
		drawLine(img, x, rect.Min.Y, x, rect.Max.Y, colGrid)
	}
	for i := 0; i <= horizontalLines; i++ {
		y := rect.Min.Y + (rect.Dy()*i)/max(1, horizontalLines)
		drawLine(img, rect.Min.X, y, rect.Max.X, y, colGrid)
	}
}

func fillRect(img *image.RGBA, rect image.Rectangle, col color.RGBA) {
	r := rect.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, col)
		}
	}
}

func fillCircle(img *image.RGBA, cx, cy, radius int, col color.RGBA) {
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			dx := x - cx
			dy := y - cy
			if dx*dx+dy*dy <= radius*radius && image.Pt(x, y).In(img.Bounds()) {
				img.SetRGBA(x, y, col)
			}
		}
	}
}

func drawLine(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		if image.Pt(x0, y0).In(img.Bounds()) {
			img.SetRGBA(x0, y0, col)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			if x0 == x1 {
				break
			}
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			if y0 == y1 {
				break
			}
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
