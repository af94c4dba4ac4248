// Package icon draws the two placeholder app icons: a large opaque color
// icon and a small transparent outline icon, each a single centered glyph.
package icon

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/Mavwarf/teamspack/internal/fonts"
	"github.com/Mavwarf/teamspack/internal/paths"
)

// Glyph is the mark drawn on both icons.
const Glyph = "A"

// Brand is the indigo background of the color icon (#4F46E5).
var Brand = color.RGBA{R: 0x4F, G: 0x46, B: 0xE5, A: 0xFF}

// Preset fixes everything about one icon.
type Preset struct {
	Name        string
	File        string
	Size        int     // square canvas edge in pixels
	FontSize    float64 // points at 72 DPI
	Lift        int     // pixels the glyph is raised above center
	Background  color.Color
	Transparent bool
}

var (
	Color = Preset{
		Name:       "color",
		File:       "color.png",
		Size:       192,
		FontSize:   120,
		Lift:       10,
		Background: Brand,
	}
	Outline = Preset{
		Name:        "outline",
		File:        "outline.png",
		Size:        32,
		FontSize:    24,
		Lift:        2,
		Background:  color.Transparent,
		Transparent: true,
	}
)

// Presets lists the icons in generation order.
var Presets = []Preset{Color, Outline}

// Lookup returns the preset with the given name.
func Lookup(name string) (Preset, bool) {
	for _, p := range Presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// Result describes a rendered icon.
type Result struct {
	Path string
	Size int
	Font string
}

// Render draws p's glyph with the first face chain resolves.
func Render(p Preset, chain fonts.Chain) (image.Image, Result, error) {
	face, name, err := chain.Resolve(p.FontSize)
	if err != nil {
		return nil, Result{}, fmt.Errorf("icon: %s: %w", p.Name, err)
	}
	defer face.Close()

	dst := newCanvas(p)
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.White,
		Face: face,
		Dot:  origin(face, p),
	}
	d.DrawString(Glyph)

	return dst, Result{Size: p.Size, Font: name}, nil
}

func newCanvas(p Preset) draw.Image {
	r := image.Rect(0, 0, p.Size, p.Size)
	if p.Transparent {
		// NewNRGBA is zeroed, i.e. fully transparent.
		return image.NewNRGBA(r)
	}
	img := image.NewRGBA(r)
	draw.Draw(img, r, image.NewUniform(p.Background), image.Point{}, draw.Src)
	return img
}

// origin places the glyph's ink box in the middle of the canvas, raised by
// p.Lift. Glyphs larger than the canvas are not clamped; the canvas clips them.
func origin(face font.Face, p Preset) fixed.Point26_6 {
	bounds, _ := font.BoundString(face, Glyph)
	w := (bounds.Max.X - bounds.Min.X).Ceil()
	h := (bounds.Max.Y - bounds.Min.Y).Ceil()
	x := floorHalf(p.Size-w) - bounds.Min.X.Floor()
	y := floorHalf(p.Size-h) - p.Lift - bounds.Min.Y.Floor()
	return fixed.P(x, y)
}

func floorHalf(n int) int {
	if n < 0 {
		return -((-n + 1) / 2)
	}
	return n / 2
}

// Encode writes img as PNG. Opaque canvases are stored as 3-channel RGB.
func Encode(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("icon: encode png: %w", err)
	}
	return nil
}

// Generate renders p and writes it to dir/p.File, replacing any existing file.
func Generate(dir string, p Preset, chain fonts.Chain) (Result, error) {
	img, res, err := Render(p, chain)
	if err != nil {
		return Result{}, err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, img); err != nil {
		return Result{}, err
	}
	res.Path = filepath.Join(dir, p.File)
	if err := paths.AtomicWrite(res.Path, buf.Bytes()); err != nil {
		return Result{}, fmt.Errorf("icon: write %s: %w", res.Path, err)
	}
	return res, nil
}
