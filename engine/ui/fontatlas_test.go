package ui

import (
	"bytes"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func newTestAtlas(t *testing.T) *FontAtlas {
	t.Helper()
	fa := &FontAtlas{}
	require.NoError(t, fa.AddFont(goregular.TTF, 18))
	return fa
}

func TestAddFontErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		size float64
	}{
		{"garbage data", []byte("definitely not a font"), 18},
		{"empty data", nil, 18},
		{"zero size", goregular.TTF, 0},
		{"negative size", goregular.TTF, -4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fa := &FontAtlas{}
			assert.Error(t, fa.AddFont(tt.data, tt.size))
		})
	}
}

func TestAtlasCoversPrintableASCII(t *testing.T) {
	fa := newTestAtlas(t)
	w, h := fa.Size()
	require.Greater(t, w, 0)
	require.Greater(t, h, 0)
	for r := glyphLo; r <= glyphHi; r++ {
		g, ok := fa.glyph(r)
		require.True(t, ok, "missing glyph %q", r)
		assert.Greater(t, g.Advance, float32(0), "glyph %q has no advance", r)
	}
	assert.Greater(t, fa.LineHeight(), float32(0))
}

func TestGlyphRectsInBoundsAndDisjoint(t *testing.T) {
	fa := newTestAtlas(t)
	w, h := fa.Size()

	var rects []image.Rectangle
	for r := glyphLo; r <= glyphHi; r++ {
		g, ok := fa.glyph(r)
		require.True(t, ok)
		if g.W == 0 || g.H == 0 {
			continue
		}
		px := image.Rect(
			int(g.U0*float32(w)+0.5), int(g.V0*float32(h)+0.5),
			int(g.U1*float32(w)+0.5), int(g.V1*float32(h)+0.5),
		)
		assert.True(t, px.In(image.Rect(0, 0, w, h)), "glyph %q rect %v outside atlas", r, px)
		assert.Equal(t, g.W, px.Dx(), "glyph %q uv width mismatch", r)
		assert.Equal(t, g.H, px.Dy(), "glyph %q uv height mismatch", r)
		rects = append(rects, px)
	}
	for i := range rects {
		for j := i + 1; j < len(rects); j++ {
			assert.True(t, rects[i].Intersect(rects[j]).Empty(),
				"glyph rects %v and %v overlap", rects[i], rects[j])
		}
	}
}

func TestBuildTexDeterministic(t *testing.T) {
	fa := newTestAtlas(t)
	w, h := fa.Size()

	a := fa.BuildTex()
	b := fa.BuildTex()
	require.Len(t, a, 4*w*h)
	assert.True(t, bytes.Equal(a, b), "BuildTex must be byte-identical without an intervening AddFont")

	// Coverage replicated into all four channels.
	for i := 0; i < len(a); i += 4 {
		if a[i] != a[i+1] || a[i] != a[i+2] || a[i] != a[i+3] {
			t.Fatalf("texel %d channels differ: % x", i/4, a[i:i+4])
		}
	}

	// The reserved solid block is fully covered.
	assert.Equal(t, byte(0xff), a[3], "solid texel must be opaque")
}

func TestMeasure(t *testing.T) {
	fa := newTestAtlas(t)

	ga, _ := fa.glyph('a')
	gb, _ := fa.glyph('b')
	w, h := fa.Measure("ab")
	assert.Equal(t, ga.Advance+gb.Advance, w)
	assert.Equal(t, fa.LineHeight(), h)

	// Unmapped runes contribute the fallback advance.
	w2, _ := fa.Measure("aあb")
	assert.Equal(t, ga.Advance+fa.fallback+gb.Advance, w2)

	// Newlines stack line height and take the widest line.
	w3, h3 := fa.Measure("ab\na")
	assert.Equal(t, ga.Advance+gb.Advance, w3)
	assert.Equal(t, 2*fa.LineHeight(), h3)
}

func TestAddFontReplacesAtlas(t *testing.T) {
	fa := newTestAtlas(t)
	small := fa.BuildTex()
	require.NoError(t, fa.AddFont(goregular.TTF, 36))
	w, h := fa.Size()
	assert.Len(t, fa.BuildTex(), 4*w*h)
	g, ok := fa.glyph('M')
	require.True(t, ok)
	assert.Greater(t, g.Advance, float32(0))
	// A larger pixel size cannot shrink the texture payload.
	assert.GreaterOrEqual(t, len(fa.BuildTex()), len(small))
}
