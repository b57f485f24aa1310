package render

import (
	"fmt"
	"image"
	"math"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/ppiankov/wordcloud/internal/model"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	spiralStep     = 0.35 // radians between probes
	spiralSpacing  = 1.6  // pixels of radius gained per radian
	wordPadding    = 2
	maxSpiralTurns = 4000
)

// Options configures the layout engine
type Options struct {
	Width       int
	Height      int
	Background  string
	Palette     []string
	FontFile    string
	MinFontSize float64
	MaxFontSize float64
	MaxWords    int
}

// OptionsFromConfig maps render configuration onto layout options
func OptionsFromConfig(cfg model.RenderConfig) Options {
	return Options{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Background:  cfg.Background,
		Palette:     cfg.Palette,
		FontFile:    cfg.FontFile,
		MinFontSize: cfg.MinFontSize,
		MaxFontSize: cfg.MaxFontSize,
		MaxWords:    cfg.MaxWords,
	}
}

// CloudRenderer places terms on an Archimedean spiral, largest first,
// skipping any word whose bounding box cannot be placed without overlap.
type CloudRenderer struct {
	opts     Options
	fontData []byte
}

// NewCloudRenderer validates the font and returns a renderer.
// The font is parsed per render so a renderer can be shared across goroutines.
func NewCloudRenderer(opts Options) (*CloudRenderer, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("canvas size must be positive, got %dx%d", opts.Width, opts.Height)
	}
	if opts.MinFontSize <= 0 {
		opts.MinFontSize = 10
	}
	if opts.MaxFontSize < opts.MinFontSize {
		opts.MaxFontSize = opts.MinFontSize
	}
	if opts.Background == "" {
		opts.Background = "#ffffff"
	}
	if len(opts.Palette) == 0 {
		opts.Palette = model.DefaultPalette
	}

	fontData := goregular.TTF
	if opts.FontFile != "" {
		data, err := os.ReadFile(opts.FontFile)
		if err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
		fontData = data
	}
	if _, err := truetype.Parse(fontData); err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	return &CloudRenderer{opts: opts, fontData: fontData}, nil
}

// Render draws terms and writes the image to output
func (r *CloudRenderer) Render(terms []model.WeightedTerm, output string) error {
	format, err := FormatFromPath(output)
	if err != nil {
		return err
	}

	img, _, err := r.Draw(terms)
	if err != nil {
		return err
	}

	return WriteImage(img, output, format)
}

// Draw lays out terms on a fresh canvas. It returns the image and the
// number of terms that were placed.
func (r *CloudRenderer) Draw(terms []model.WeightedTerm) (image.Image, int, error) {
	f, err := truetype.Parse(r.fontData)
	if err != nil {
		return nil, 0, fmt.Errorf("parse font: %w", err)
	}

	dc := gg.NewContext(r.opts.Width, r.opts.Height)
	dc.SetHexColor(r.opts.Background)
	dc.Clear()

	ordered := append([]model.WeightedTerm(nil), terms...)
	model.SortByWeight(ordered)
	if r.opts.MaxWords > 0 && len(ordered) > r.opts.MaxWords {
		ordered = ordered[:r.opts.MaxWords]
	}
	if len(ordered) == 0 {
		return dc.Image(), 0, nil
	}

	minWeight, maxWeight := ordered[len(ordered)-1].Weight, ordered[0].Weight
	canvas := image.Rect(0, 0, r.opts.Width, r.opts.Height)

	var occupied []image.Rectangle
	for i, term := range ordered {
		size := r.fontSize(term.Weight, minWeight, maxWeight)
		face := truetype.NewFace(f, &truetype.Options{Size: size})
		dc.SetFontFace(face)

		w, h := dc.MeasureString(string(term.Term))
		box, ok := place(canvas, occupied, int(math.Ceil(w)), int(math.Ceil(h)))
		if !ok {
			_ = face.Close()
			continue
		}
		occupied = append(occupied, box)

		dc.SetHexColor(r.opts.Palette[i%len(r.opts.Palette)])
		center := box.Inset(wordPadding)
		cx := float64(center.Min.X+center.Max.X) / 2
		cy := float64(center.Min.Y+center.Max.Y) / 2
		dc.DrawStringAnchored(string(term.Term), cx, cy, 0.5, 0.5)
		_ = face.Close()
	}

	return dc.Image(), len(occupied), nil
}

// fontSize scales weight linearly between the configured bounds
func (r *CloudRenderer) fontSize(weight, minWeight, maxWeight float64) float64 {
	if maxWeight <= minWeight {
		return r.opts.MaxFontSize
	}
	ratio := (weight - minWeight) / (maxWeight - minWeight)
	return r.opts.MinFontSize + ratio*(r.opts.MaxFontSize-r.opts.MinFontSize)
}

// place walks a spiral out from the canvas centre and returns the first
// padded box of size w x h that fits inside canvas without touching any
// occupied box
func place(canvas image.Rectangle, occupied []image.Rectangle, w, h int) (image.Rectangle, bool) {
	w += 2 * wordPadding
	h += 2 * wordPadding
	if w > canvas.Dx() || h > canvas.Dy() {
		return image.Rectangle{}, false
	}

	cx := float64(canvas.Dx()) / 2
	cy := float64(canvas.Dy()) / 2

	for step := 0; step < maxSpiralTurns; step++ {
		theta := float64(step) * spiralStep
		radius := spiralSpacing * theta
		x := int(cx + radius*math.Cos(theta) - float64(w)/2)
		y := int(cy + radius*math.Sin(theta) - float64(h)/2)

		box := image.Rect(x, y, x+w, y+h)
		if !box.In(canvas) {
			continue
		}
		if overlapsAny(box, occupied) {
			continue
		}
		return box, true
	}
	return image.Rectangle{}, false
}

func overlapsAny(box image.Rectangle, occupied []image.Rectangle) bool {
	for _, other := range occupied {
		if box.Overlaps(other) {
			return true
		}
	}
	return false
}
