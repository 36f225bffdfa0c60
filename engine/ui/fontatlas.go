package ui

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Printable ASCII range rasterized into the atlas. Runes outside the range
// draw nothing and advance by a fallback width.
const (
	glyphLo rune = 32
	glyphHi rune = 126
)

const (
	atlasPadding  = 2
	atlasMinSize  = 128
	atlasMaxSize  = 4096
	solidTexBlock = 2 // fully-covered texel block at the origin, used by untextured quads
)

var ErrAtlasTooLarge = errors.New("font atlas too large")

// Glyph holds one rasterized codepoint: its UV rectangle in the atlas,
// advance width and bitmap size/bearing. Immutable once the atlas is built.
type Glyph struct {
	Rune     rune
	Advance  float32
	BearingX float32 // left bearing in pixels
	BearingY float32 // distance from baseline to glyph top
	W, H     int
	U0, V0   float32
	U1, V1   float32
}

// FontAtlas owns the glyph table and the coverage bitmap for one font at one
// pixel size. Built once at startup, read-only afterwards.
type FontAtlas struct {
	glyphs   map[rune]Glyph
	w, h     int
	cov      []byte // one coverage byte per texel
	ascent   float32
	lineH    float32
	fallback float32
}

// AddFont parses data as an OpenType/TrueType font program and rasterizes the
// printable ASCII range at sizePx into a single shelf-packed atlas. Calling it
// again replaces the previous atlas. Failures here are fatal startup errors.
func (fa *FontAtlas) AddFont(data []byte, sizePx float64) error {
	if sizePx <= 0 {
		return fmt.Errorf("invalid pixel size %v", sizePx)
	}
	ft, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size: sizePx, DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("new face: %w", err)
	}
	defer face.Close()

	m := face.Metrics()
	ascent := float32(m.Ascent.Round())
	lineH := float32(m.Height.Round())

	type meas struct {
		r      rune
		w, h   int
		adv    float32
		bx, by float32
	}
	measure := make([]meas, 0, glyphHi-glyphLo+1)
	for r := glyphLo; r <= glyphHi; r++ {
		br, adv, ok := face.GlyphBounds(r)
		if !ok {
			continue
		}
		measure = append(measure, meas{
			r:   r,
			w:   (br.Max.X - br.Min.X).Round(),
			h:   (br.Max.Y - br.Min.Y).Round(),
			adv: float32(adv.Round()),
			bx:  float32(br.Min.X.Round()),
			by:  float32(-br.Min.Y.Round()),
		})
	}
	if len(measure) == 0 {
		return errors.New("font has no printable glyphs")
	}

	// Shelf packer: rows left to right, grow the atlas until everything fits.
	// The first solidTexBlock texels at the origin stay reserved.
	atlasSize := atlasMinSize
	var pos map[rune]image.Point
	for {
		x, y, rowH := atlasPadding, atlasPadding, 0
		fits := true
		pos = make(map[rune]image.Point, len(measure))

		for _, g := range measure {
			if g.w == 0 || g.h == 0 {
				continue
			}
			if g.w+atlasPadding*2 > atlasSize || g.h+atlasPadding*2 > atlasSize {
				fits = false
				break
			}
			if x+g.w+atlasPadding > atlasSize {
				x = atlasPadding
				y += rowH + atlasPadding
				rowH = 0
			}
			if y+g.h+atlasPadding > atlasSize {
				fits = false
				break
			}
			pos[g.r] = image.Pt(x, y)
			x += g.w + atlasPadding
			if g.h > rowH {
				rowH = g.h
			}
		}

		if fits {
			break
		}
		atlasSize *= 2
		if atlasSize > atlasMaxSize {
			return fmt.Errorf("%w (>%d)", ErrAtlasTooLarge, atlasMaxSize)
		}
	}

	// Rasterize coverage into a single-channel bitmap.
	dst := image.NewAlpha(image.Rect(0, 0, atlasSize, atlasSize))
	drawer := &font.Drawer{Dst: dst, Src: image.White, Face: face}

	glyphs := make(map[rune]Glyph, len(measure))
	for _, g := range measure {
		gl := Glyph{
			Rune: g.r, Advance: g.adv,
			BearingX: g.bx, BearingY: g.by,
			W: g.w, H: g.h,
		}
		if g.w > 0 && g.h > 0 {
			p := pos[g.r]
			// The drawer dot sits on the baseline; shift so the glyph's ink
			// box lands exactly at p.
			drawer.Dot = fixed.P(p.X-int(g.bx), p.Y+int(g.by))
			drawer.DrawString(string(g.r))

			gl.U0 = float32(p.X) / float32(atlasSize)
			gl.V0 = float32(p.Y) / float32(atlasSize)
			gl.U1 = float32(p.X+g.w) / float32(atlasSize)
			gl.V1 = float32(p.Y+g.h) / float32(atlasSize)
		}
		glyphs[g.r] = gl
	}

	cov := make([]byte, atlasSize*atlasSize)
	for y := 0; y < atlasSize; y++ {
		copy(cov[y*atlasSize:(y+1)*atlasSize], dst.Pix[y*dst.Stride:y*dst.Stride+atlasSize])
	}
	for y := 0; y < solidTexBlock; y++ {
		for x := 0; x < solidTexBlock; x++ {
			cov[y*atlasSize+x] = 0xff
		}
	}

	fallback := float32(sizePx) * 0.5
	if sp, ok := glyphs[' ']; ok && sp.Advance > 0 {
		fallback = sp.Advance
	}

	fa.glyphs = glyphs
	fa.w, fa.h = atlasSize, atlasSize
	fa.cov = cov
	fa.ascent = ascent
	fa.lineH = lineH
	fa.fallback = fallback
	return nil
}

// Size reports the atlas pixel dimensions. Valid after a successful AddFont.
func (fa *FontAtlas) Size() (int, int) { return fa.w, fa.h }

// LineHeight reports the font's line advance in pixels.
func (fa *FontAtlas) LineHeight() float32 { return fa.lineH }

// BuildTex produces an RGBA8 pixel buffer with the coverage value replicated
// into all four channels, suitable for a one-time texture upload. The buffer
// is rebuilt on every call, never cached.
func (fa *FontAtlas) BuildTex() []byte {
	out := make([]byte, 4*len(fa.cov))
	for i, a := range fa.cov {
		out[i*4+0] = a
		out[i*4+1] = a
		out[i*4+2] = a
		out[i*4+3] = a
	}
	return out
}

// Measure returns the extent of s: the widest line's advance sum and the
// total line height. Unmapped runes contribute the fallback advance.
func (fa *FontAtlas) Measure(s string) (w, h float32) {
	var lineW float32
	h = fa.lineH
	for _, r := range s {
		if r == '\n' {
			if lineW > w {
				w = lineW
			}
			lineW = 0
			h += fa.lineH
			continue
		}
		if g, ok := fa.glyphs[r]; ok {
			lineW += g.Advance
		} else {
			lineW += fa.fallback
		}
	}
	if lineW > w {
		w = lineW
	}
	return w, h
}

func (fa *FontAtlas) glyph(r rune) (Glyph, bool) {
	g, ok := fa.glyphs[r]
	return g, ok
}

// solidUV is the center of the reserved fully-covered texel block, used as
// the texture coordinate for untextured quads.
func (fa *FontAtlas) solidUV() (float32, float32) {
	if fa.w == 0 || fa.h == 0 {
		return 0, 0
	}
	return float32(solidTexBlock) * 0.5 / float32(fa.w), float32(solidTexBlock) * 0.5 / float32(fa.h)
}
