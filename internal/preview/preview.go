package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/gobold"

	"moviekit/internal/config"
)

// Options sizes and colours the generated posters.
type Options struct {
	Width        int
	CanvasWidth  int
	CanvasHeight int
	Background   color.NRGBA
	NumberColor  color.NRGBA
	FontSize     float64
}

// OptionsFromConfig converts the [preview] section, parsing its colours.
func OptionsFromConfig(cfg config.Preview) (Options, error) {
	bg, err := ParseHexColor(cfg.Background)
	if err != nil {
		return Options{}, fmt.Errorf("preview.background: %w", err)
	}
	fg, err := ParseHexColor(cfg.NumberColor)
	if err != nil {
		return Options{}, fmt.Errorf("preview.number_color: %w", err)
	}
	if cfg.Width <= 0 || cfg.CanvasWidth <= 0 || cfg.CanvasHeight <= 0 {
		return Options{}, errors.New("preview dimensions must be positive")
	}
	return Options{
		Width:        cfg.Width,
		CanvasWidth:  cfg.CanvasWidth,
		CanvasHeight: cfg.CanvasHeight,
		Background:   bg,
		NumberColor:  fg,
		FontSize:     cfg.FontSize,
	}, nil
}

// ParseHexColor reads #RRGGBB.
func ParseHexColor(value string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q", value)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q", value)
	}
	return color.NRGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 0xFF}, nil
}

// Poster scales img to opts.Width, keeping its aspect ratio, and centres it
// on a CanvasWidth x CanvasHeight background.
func Poster(img image.Image, opts Options) *image.NRGBA {
	scaled := imaging.Resize(img, opts.Width, 0, imaging.Lanczos)
	canvas := imaging.New(opts.CanvasWidth, opts.CanvasHeight, opts.Background)
	return imaging.PasteCenter(canvas, scaled)
}

// StampNumber draws n in the top-left corner of img.
func StampNumber(img image.Image, n int, opts Options) (image.Image, error) {
	font, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("load number font: %w", err)
	}
	size := opts.FontSize
	if size <= 0 {
		size = 50
	}
	dc := gg.NewContextForImage(img)
	dc.SetFontFace(truetype.NewFace(font, &truetype.Options{Size: size}))
	dc.SetColor(opts.NumberColor)
	dc.DrawStringAnchored(strconv.Itoa(n), 0, 0, 0, 1)
	return dc.Image(), nil
}

// Result lists the files written for one source image.
type Result struct {
	Source  string
	Outputs []string
}

// Generate writes copies posters for the image at path, named
// <stem>.preview.copy.NN<ext>. When numbered is set each copy is stamped with
// its 1-based position and named <stem>.preview.copy.NN-N<ext>. The source
// image is left in place. Zero copies writes nothing.
func Generate(path string, copies int, numbered bool, opts Options) (Result, error) {
	if copies < 1 {
		return Result{Source: path}, nil
	}
	src, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return Result{}, fmt.Errorf("open image: %w", err)
	}
	poster := Poster(src, opts)

	dir := filepath.Dir(path)
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)
	result := Result{Source: path}
	for i := 1; i <= copies; i++ {
		name := fmt.Sprintf("%s.preview.copy.%02d", stem, i)
		var out image.Image = poster
		if numbered {
			out, err = StampNumber(poster, i, opts)
			if err != nil {
				return result, err
			}
			name = fmt.Sprintf("%s-%d", name, i)
		}
		target := filepath.Join(dir, name+ext)
		if err := imaging.Save(out, target, imaging.JPEGQuality(95)); err != nil {
			return result, fmt.Errorf("save preview: %w", err)
		}
		result.Outputs = append(result.Outputs, target)
	}
	return result, nil
}
