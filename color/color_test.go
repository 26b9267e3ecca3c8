package color

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/smallnest/agenttools/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRGBToHex(t *testing.T) {
	hex, err := RGBToHex(255, 87, 51)
	require.NoError(t, err)
	assert.Equal(t, "#FF5733", hex)

	hex, err = RGBToHex(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "#000000", hex)

	_, err = RGBToHex(256, 0, 0)
	assert.ErrorIs(t, err, tool.ErrInvalidInput)

	_, err = RGBToHex(0, -1, 0)
	assert.ErrorIs(t, err, tool.ErrInvalidInput)
}

func TestHexToRGB(t *testing.T) {
	t.Run("full form", func(t *testing.T) {
		rgb, err := HexToRGB("#FF5733")
		require.NoError(t, err)
		assert.Equal(t, RGB{R: 255, G: 87, B: 51}, rgb)
	})

	t.Run("lowercase and no hash", func(t *testing.T) {
		rgb, err := HexToRGB("ff5733")
		require.NoError(t, err)
		assert.Equal(t, RGB{R: 255, G: 87, B: 51}, rgb)
	})

	t.Run("short form", func(t *testing.T) {
		rgb, err := HexToRGB("#F53")
		require.NoError(t, err)
		assert.Equal(t, RGB{R: 255, G: 85, B: 51}, rgb)
	})

	t.Run("invalid", func(t *testing.T) {
		for _, bad := range []string{"", "#12345", "#GG0000", "red", "#12345678"} {
			_, err := HexToRGB(bad)
			assert.ErrorIs(t, err, tool.ErrInvalidInput, "input %q", bad)
		}
	})
}

func TestHexRGBRoundTrip(t *testing.T) {
	for _, hex := range []string{"#FF5733", "#000000", "#FFFFFF", "#0A141E", "#7F7F7F"} {
		rgb, err := HexToRGB(hex)
		require.NoError(t, err)
		back, err := RGBToHex(rgb.R, rgb.G, rgb.B)
		require.NoError(t, err)
		assert.Equal(t, hex, back)
	}
}

var roundTripColors = []RGB{
	{255, 87, 51},
	{0, 0, 0},
	{255, 255, 255},
	{128, 128, 128},
	{10, 200, 30},
	{1, 2, 3},
	{250, 250, 2},
}

func TestHSLRoundTrip(t *testing.T) {
	for _, c := range roundTripColors {
		hsl, err := RGBToHSL(c.R, c.G, c.B)
		require.NoError(t, err)
		back, err := HSLToRGB(hsl.H, hsl.S, hsl.L)
		require.NoError(t, err)
		assert.InDelta(t, c.R, back.R, 1, "red of %v", c)
		assert.InDelta(t, c.G, back.G, 1, "green of %v", c)
		assert.InDelta(t, c.B, back.B, 1, "blue of %v", c)
	}
}

func TestHSVRoundTrip(t *testing.T) {
	for _, c := range roundTripColors {
		hsv, err := RGBToHSV(c.R, c.G, c.B)
		require.NoError(t, err)
		back, err := HSVToRGB(hsv.H, hsv.S, hsv.V)
		require.NoError(t, err)
		assert.InDelta(t, c.R, back.R, 1, "red of %v", c)
		assert.InDelta(t, c.G, back.G, 1, "green of %v", c)
		assert.InDelta(t, c.B, back.B, 1, "blue of %v", c)
	}
}

func TestCMYKRoundTrip(t *testing.T) {
	for _, c := range roundTripColors {
		cmyk, err := RGBToCMYK(c.R, c.G, c.B)
		require.NoError(t, err)
		back, err := CMYKToRGB(cmyk.C, cmyk.M, cmyk.Y, cmyk.K)
		require.NoError(t, err)
		assert.InDelta(t, c.R, back.R, 1, "red of %v", c)
		assert.InDelta(t, c.G, back.G, 1, "green of %v", c)
		assert.InDelta(t, c.B, back.B, 1, "blue of %v", c)
	}
}

func TestRGBToCMYK_Black(t *testing.T) {
	cmyk, err := RGBToCMYK(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, CMYK{C: 0, M: 0, Y: 0, K: 100}, cmyk)
}

func TestConvert(t *testing.T) {
	conv, err := Convert("#FF5733")
	require.NoError(t, err)

	assert.Equal(t, "#FF5733", conv.Hex)
	assert.Equal(t, RGB{R: 255, G: 87, B: 51}, conv.RGB)
	assert.InDelta(t, 10.6, conv.HSL.H, 0.2)
	assert.InDelta(t, 100.0, conv.HSL.S, 0.2)
	assert.InDelta(t, 60.0, conv.HSL.L, 0.2)
	assert.InDelta(t, 0.0, conv.CMYK.C, 0.2)
	assert.InDelta(t, 65.9, conv.CMYK.M, 0.2)
	assert.InDelta(t, 80.0, conv.CMYK.Y, 0.2)
	assert.InDelta(t, 0.0, conv.CMYK.K, 0.2)
}

func TestContrastRatio(t *testing.T) {
	t.Run("black on white", func(t *testing.T) {
		res, err := ContrastRatio("#000000", "#FFFFFF")
		require.NoError(t, err)
		assert.Equal(t, 21.0, res.Ratio)
		assert.Equal(t, RatingAAA, res.Rating)
	})

	t.Run("symmetry", func(t *testing.T) {
		ab, err := ContrastRatio("#336699", "#FFEE00")
		require.NoError(t, err)
		ba, err := ContrastRatio("#FFEE00", "#336699")
		require.NoError(t, err)
		assert.Equal(t, ab.Ratio, ba.Ratio)
	})

	t.Run("same color", func(t *testing.T) {
		res, err := ContrastRatio("#ABCDEF", "#ABCDEF")
		require.NoError(t, err)
		assert.Equal(t, 1.0, res.Ratio)
		assert.Equal(t, RatingFail, res.Rating)
	})

	t.Run("aa boundary grays", func(t *testing.T) {
		// #767676 on white is the canonical just-passing AA gray,
		// #777777 the canonical just-failing one.
		pass, err := ContrastRatio("#767676", "#FFFFFF")
		require.NoError(t, err)
		assert.InDelta(t, 4.54, pass.Ratio, 0.02)
		assert.Equal(t, RatingAA, pass.Rating)

		fail, err := ContrastRatio("#777777", "#FFFFFF")
		require.NoError(t, err)
		assert.InDelta(t, 4.48, fail.Ratio, 0.02)
		assert.Equal(t, RatingAALarge, fail.Rating)
	})

	t.Run("invalid color", func(t *testing.T) {
		_, err := ContrastRatio("nope", "#FFFFFF")
		assert.ErrorIs(t, err, tool.ErrInvalidInput)
	})
}

func TestContrastRating(t *testing.T) {
	assert.Equal(t, RatingAAA, contrastRating(7.0))
	assert.Equal(t, RatingAA, contrastRating(6.99))
	assert.Equal(t, RatingAA, contrastRating(4.5))
	assert.Equal(t, RatingAALarge, contrastRating(4.49))
	assert.Equal(t, RatingAALarge, contrastRating(3.0))
	assert.Equal(t, RatingFail, contrastRating(2.99))
}

func TestPalette(t *testing.T) {
	for _, style := range []string{StyleHappy, StyleWarm, StyleSoft} {
		colors, err := Palette(style, 5, "")
		require.NoError(t, err, style)
		assert.Len(t, colors, 5, style)
		for _, hex := range colors {
			_, err := HexToRGB(hex)
			assert.NoError(t, err, "%s produced %q", style, hex)
		}
	}

	t.Run("monochrome", func(t *testing.T) {
		colors, err := Palette(StyleMonochrome, 4, "#336699")
		require.NoError(t, err)
		require.Len(t, colors, 4)

		// Lightness must rise monotonically.
		prev := -1.0
		for _, hex := range colors {
			rgb, err := HexToRGB(hex)
			require.NoError(t, err)
			hsl, err := RGBToHSL(rgb.R, rgb.G, rgb.B)
			require.NoError(t, err)
			assert.Greater(t, hsl.L, prev)
			prev = hsl.L
		}
	})

	t.Run("monochrome without base", func(t *testing.T) {
		_, err := Palette(StyleMonochrome, 4, "")
		assert.ErrorIs(t, err, tool.ErrInvalidInput)
	})

	t.Run("bad count", func(t *testing.T) {
		_, err := Palette(StyleHappy, 0, "")
		assert.ErrorIs(t, err, tool.ErrInvalidInput)
		_, err = Palette(StyleHappy, maxPaletteSize+1, "")
		assert.ErrorIs(t, err, tool.ErrInvalidInput)
	})

	t.Run("bad style", func(t *testing.T) {
		_, err := Palette("neon", 3, "")
		assert.ErrorIs(t, err, tool.ErrInvalidInput)
	})
}

func TestBlend(t *testing.T) {
	t.Run("endpoints", func(t *testing.T) {
		first, err := Blend("#FF0000", "#0000FF", 0, SpaceRGB)
		require.NoError(t, err)
		assert.Equal(t, "#FF0000", first)

		second, err := Blend("#FF0000", "#0000FF", 1, SpaceRGB)
		require.NoError(t, err)
		assert.Equal(t, "#0000FF", second)
	})

	t.Run("midpoint rgb", func(t *testing.T) {
		mid, err := Blend("#000000", "#FFFFFF", 0.5, SpaceRGB)
		require.NoError(t, err)
		rgb, err := HexToRGB(mid)
		require.NoError(t, err)
		assert.InDelta(t, 127.5, float64(rgb.R), 1)
		assert.Equal(t, rgb.R, rgb.G)
		assert.Equal(t, rgb.G, rgb.B)
	})

	t.Run("default space is lab", func(t *testing.T) {
		mixed, err := Blend("#FF0000", "#0000FF", 0.5, "")
		require.NoError(t, err)
		_, err = HexToRGB(mixed)
		assert.NoError(t, err)
	})

	t.Run("bad t", func(t *testing.T) {
		_, err := Blend("#FF0000", "#0000FF", 1.5, "")
		assert.ErrorIs(t, err, tool.ErrInvalidInput)
	})

	t.Run("bad space", func(t *testing.T) {
		_, err := Blend("#FF0000", "#0000FF", 0.5, "cmy")
		assert.ErrorIs(t, err, tool.ErrInvalidInput)
	})
}

func TestLightenDarken(t *testing.T) {
	white, err := Lighten("#000000", 100)
	require.NoError(t, err)
	assert.Equal(t, "#FFFFFF", white)

	black, err := Darken("#FFFFFF", 100)
	require.NoError(t, err)
	assert.Equal(t, "#000000", black)

	lighter, err := Lighten("#336699", 10)
	require.NoError(t, err)
	l0, _ := HexToRGB("#336699")
	l1, _ := HexToRGB(lighter)
	hsl0, _ := RGBToHSL(l0.R, l0.G, l0.B)
	hsl1, _ := RGBToHSL(l1.R, l1.G, l1.B)
	assert.InDelta(t, hsl0.L+10, hsl1.L, 0.5)

	_, err = Lighten("#336699", 250)
	assert.ErrorIs(t, err, tool.ErrInvalidInput)
}

func TestDistance(t *testing.T) {
	zero, err := Distance("#336699", "#336699", "")
	require.NoError(t, err)
	assert.Equal(t, 0.0, zero)

	for _, metric := range []string{MetricCIE76, MetricCIE94, MetricCIEDE2k} {
		d, err := Distance("#000000", "#FFFFFF", metric)
		require.NoError(t, err, metric)
		assert.Greater(t, d, 0.0, metric)
	}

	_, err = Distance("#000000", "#FFFFFF", "manhattan")
	assert.ErrorIs(t, err, tool.ErrInvalidInput)
}

func TestTools(t *testing.T) {
	defs := Tools()
	require.Len(t, defs, 7)

	names := make(map[string]bool)
	for _, def := range defs {
		assert.Equal(t, Category, def.Category())
		assert.True(t, def.ReadOnly(), def.Name())
		assert.NotNil(t, def.Schema(), def.Name())
		names[def.Name()] = true
	}
	assert.True(t, names["color_convert"])
	assert.True(t, names["color_contrast"])
	assert.True(t, names["color_palette"])
}

func TestConvertToolCall(t *testing.T) {
	reg := tool.NewRegistry(Tools()...)
	ctx := context.Background()

	out, err := reg.Execute(ctx, "color_convert", `{"color": "#FF5733"}`)
	require.NoError(t, err)

	var conv Conversion
	require.NoError(t, json.Unmarshal([]byte(out), &conv))
	assert.Equal(t, "#FF5733", conv.Hex)
	assert.Equal(t, RGB{R: 255, G: 87, B: 51}, conv.RGB)

	out, err = reg.Execute(ctx, "color_convert", `{"r": 255, "g": 87, "b": 51}`)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &conv))
	assert.Equal(t, "#FF5733", conv.Hex)

	_, err = reg.Execute(ctx, "color_convert", `{"r": 255}`)
	assert.ErrorIs(t, err, tool.ErrInvalidInput)
}

func TestContrastToolCall(t *testing.T) {
	def := contrastTool()
	out, err := def.Call(context.Background(), `{"first": "#000000", "second": "#FFFFFF"}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ratio": 21.0, "rating": "AAA"}`, out)
}
