package textfit

import (
	"fmt"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"honnef.co/go/curve"
)

var families = map[string][2][]byte{
	"go":      {goregular.TTF, gobold.TTF},
	"go mono": {gomono.TTF, gomonobold.TTF},
}

// Families lists the font families NewFontSet accepts.
func Families() []string { return []string{"Go", "Go Mono"} }

// KnownFamily reports whether NewFontSet accepts family.
func KnownFamily(family string) bool {
	_, ok := families[strings.ToLower(strings.TrimSpace(family))]
	return ok
}

type faceKey struct {
	size float64
	bold bool
}

// FontSet is a regular and a bold font of one family. It measures text with
// hinted truetype faces and outlines it from the raw sfnt glyphs. Sizes are
// in pixels.
type FontSet struct {
	mu      sync.Mutex
	faces   map[faceKey]font.Face
	tt      [2]*truetype.Font
	outline [2]*sfnt.Font
	buf     sfnt.Buffer
}

var _ Typesetter = (*FontSet)(nil)

// NewFontSet loads the named family, matched case-insensitively.
func NewFontSet(family string) (*FontSet, error) {
	data, ok := families[strings.ToLower(strings.TrimSpace(family))]
	if !ok {
		return nil, fmt.Errorf("textfit: unknown font family %q (have %s)", family, strings.Join(Families(), ", "))
	}
	fs := &FontSet{faces: make(map[faceKey]font.Face)}
	for i, ttf := range data {
		tt, err := truetype.Parse(ttf)
		if err != nil {
			return nil, fmt.Errorf("textfit: parsing %s: %w", family, err)
		}
		sf, err := sfnt.Parse(ttf)
		if err != nil {
			return nil, fmt.Errorf("textfit: parsing %s outlines: %w", family, err)
		}
		fs.tt[i], fs.outline[i] = tt, sf
	}
	return fs, nil
}

func weight(bold bool) int {
	if bold {
		return 1
	}
	return 0
}

// Face returns the cached face for size and weight.
func (fs *FontSet) Face(size float64, bold bool) font.Face {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.face(size, bold)
}

func (fs *FontSet) face(size float64, bold bool) font.Face {
	k := faceKey{size, bold}
	if f, ok := fs.faces[k]; ok {
		return f
	}
	f := truetype.NewFace(fs.tt[weight(bold)], &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	fs.faces[k] = f
	return f
}

// Measure returns the advance width and line height of text.
func (fs *FontSet) Measure(text string, size float64, bold bool) (w, h float64) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	f := fs.face(size, bold)
	return fromFixed(font.MeasureString(f, text)), fromFixed(f.Metrics().Height)
}

// Outline returns the glyph outlines of text set on a baseline at y = 0.
// Runes missing from the font are skipped.
func (fs *FontSet) Outline(text string, size float64, bold bool) (curve.BezPath, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	f := fs.outline[weight(bold)]
	ppem := fixed.Int26_6(size * 64)

	var path curve.BezPath
	var x fixed.Int26_6
	prev := sfnt.GlyphIndex(0)
	for _, r := range text {
		gi, err := f.GlyphIndex(&fs.buf, r)
		if err != nil {
			return nil, fmt.Errorf("textfit: glyph for %q: %w", r, err)
		}
		if gi == 0 {
			continue
		}
		if prev != 0 {
			if k, err := f.Kern(&fs.buf, prev, gi, ppem, font.HintingNone); err == nil {
				x += k
			}
		}
		segs, err := f.LoadGlyph(&fs.buf, gi, ppem, nil)
		if err != nil {
			return nil, fmt.Errorf("textfit: outline for %q: %w", r, err)
		}
		dx := fromFixed(x)
		pt := func(p fixed.Point26_6) curve.Point { return curve.Pt(dx+fromFixed(p.X), fromFixed(p.Y)) }
		open := false
		for _, s := range segs {
			switch s.Op {
			case sfnt.SegmentOpMoveTo:
				if open {
					path.ClosePath()
				}
				path.MoveTo(pt(s.Args[0]))
				open = true
			case sfnt.SegmentOpLineTo:
				path.LineTo(pt(s.Args[0]))
			case sfnt.SegmentOpQuadTo:
				path.QuadTo(pt(s.Args[0]), pt(s.Args[1]))
			case sfnt.SegmentOpCubeTo:
				path.CubicTo(pt(s.Args[0]), pt(s.Args[1]), pt(s.Args[2]))
			}
		}
		if open {
			path.ClosePath()
		}
		adv, err := f.GlyphAdvance(&fs.buf, gi, ppem, font.HintingNone)
		if err != nil {
			return nil, fmt.Errorf("textfit: advance for %q: %w", r, err)
		}
		x += adv
		prev = gi
	}
	return path, nil
}

func fromFixed(v fixed.Int26_6) float64 { return float64(v) / 64 }
