// Package fonts resolves a font face through an ordered list of candidate
// sources, ending in a built-in face that is always available.
package fonts

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
)

// ErrNoFace is returned when no source produced a face and the chain has no
// terminal fallback.
var ErrNoFace = errors.New("no usable font face")

const (
	// HelveticaPath is the bold sans-serif shipped with macOS.
	HelveticaPath = "/System/Library/Fonts/Helvetica.ttc"
	// ArialName is looked up relative to the working directory, then in SearchDirs.
	ArialName = "Arial.ttf"
	// BasicName labels the terminal bitmap face.
	BasicName = "basicfont 7x13"
)

// Source is one candidate in a Chain.
type Source interface {
	Name() string
	Face(size float64) (font.Face, error)
}

// FileSource loads a TrueType/OpenType font or collection from disk.
type FileSource struct {
	Path  string
	Index int      // member of a .ttc/.otc collection
	Dirs  []string // where to look for a bare file name; nil uses SearchDirs()
}

func (s FileSource) Name() string { return s.Path }

func (s FileSource) Face(size float64) (font.Face, error) {
	p, err := s.locate()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("fonts: read %s: %w", p, err)
	}
	var f *opentype.Font
	switch strings.ToLower(filepath.Ext(p)) {
	case ".ttc", ".otc":
		c, err := opentype.ParseCollection(data)
		if err != nil {
			return nil, fmt.Errorf("fonts: parse collection %s: %w", p, err)
		}
		if s.Index < 0 || s.Index >= c.NumFonts() {
			return nil, fmt.Errorf("fonts: %s has %d fonts, index %d out of range", p, c.NumFonts(), s.Index)
		}
		f, err = c.Font(s.Index)
		if err != nil {
			return nil, fmt.Errorf("fonts: collection member %d of %s: %w", s.Index, p, err)
		}
	default:
		f, err = opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("fonts: parse %s: %w", p, err)
		}
	}
	return newFace(f, size)
}

// locate returns the path as given if it exists, otherwise searches the
// font directories for a bare file name.
func (s FileSource) locate() (string, error) {
	if _, err := os.Stat(s.Path); err == nil {
		return s.Path, nil
	}
	if filepath.IsAbs(s.Path) || filepath.Base(s.Path) != s.Path {
		return "", fmt.Errorf("fonts: %s: %w", s.Path, fs.ErrNotExist)
	}
	dirs := s.Dirs
	if dirs == nil {
		dirs = SearchDirs()
	}
	for _, dir := range dirs {
		if p := findFile(dir, s.Path); p != "" {
			return p, nil
		}
	}
	return "", fmt.Errorf("fonts: %s not found in font directories: %w", s.Path, fs.ErrNotExist)
}

// findFile walks dir for a file whose name matches name case-insensitively.
func findFile(dir, name string) string {
	var found string
	_ = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && strings.EqualFold(d.Name(), name) {
			found = p
			return fs.SkipAll
		}
		return nil
	})
	return found
}

// EmbeddedSource is a font compiled into the binary.
type EmbeddedSource struct {
	Label string
	Data  []byte
}

func (s EmbeddedSource) Name() string { return s.Label }

func (s EmbeddedSource) Face(size float64) (font.Face, error) {
	f, err := opentype.Parse(s.Data)
	if err != nil {
		return nil, fmt.Errorf("fonts: parse %s: %w", s.Label, err)
	}
	return newFace(f, size)
}

// GoBold is the Go Bold font from golang.org/x/image.
var GoBold = EmbeddedSource{Label: "Go Bold", Data: gobold.TTF}

func newFace(f *opentype.Font, size float64) (font.Face, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("fonts: new face: %w", err)
	}
	return face, nil
}

// Chain tries Sources in order and falls back to Terminal.
type Chain struct {
	Sources  []Source
	Terminal font.Face
}

// DefaultChain returns extra paths followed by the system bold sans-serif,
// the common fallback family and the embedded Go Bold, terminating in the
// 7x13 bitmap face.
func DefaultChain(extra ...string) Chain {
	var srcs []Source
	for _, p := range extra {
		srcs = append(srcs, FileSource{Path: p})
	}
	srcs = append(srcs,
		FileSource{Path: HelveticaPath},
		FileSource{Path: ArialName},
		GoBold,
	)
	return Chain{Sources: srcs, Terminal: basicfont.Face7x13}
}

// Resolve returns the first face any source can produce at size, and the
// name of the source it came from. Source errors are not reported.
func (c Chain) Resolve(size float64) (font.Face, string, error) {
	for _, s := range c.Sources {
		face, err := s.Face(size)
		if err == nil {
			return face, s.Name(), nil
		}
	}
	if c.Terminal != nil {
		return c.Terminal, BasicName, nil
	}
	return nil, "", ErrNoFace
}

// SearchDirs lists the platform font directories, user directories first.
func SearchDirs() []string {
	home, _ := os.UserHomeDir()
	var dirs []string
	switch runtime.GOOS {
	case "windows":
		windir := os.Getenv("WINDIR")
		if windir == "" {
			windir = `C:\Windows`
		}
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			dirs = append(dirs, filepath.Join(local, "Microsoft", "Windows", "Fonts"))
		}
		dirs = append(dirs, filepath.Join(windir, "Fonts"))
	case "darwin":
		if home != "" {
			dirs = append(dirs, filepath.Join(home, "Library", "Fonts"))
		}
		dirs = append(dirs, "/Library/Fonts", "/System/Library/Fonts", "/System/Library/Fonts/Supplemental")
	default:
		if home != "" {
			dirs = append(dirs, filepath.Join(home, ".local", "share", "fonts"), filepath.Join(home, ".fonts"))
		}
		dirs = append(dirs, "/usr/local/share/fonts", "/usr/share/fonts")
	}
	return dirs
}
