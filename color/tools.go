package color

import (
	"context"
	"encoding/json"

	"github.com/smallnest/agenttools/tool"
)

// Category is the registry category of every tool in this package.
const Category = "color"

type convertParams struct {
	Color string `json:"color"`
	R     *int   `json:"r"`
	G     *int   `json:"g"`
	B     *int   `json:"b"`
}

type contrastParams struct {
	First  string `json:"first"`
	Second string `json:"second"`
}

type paletteParams struct {
	Style string `json:"style"`
	Count int    `json:"count"`
	Base  string `json:"base"`
}

type blendParams struct {
	First  string  `json:"first"`
	Second string  `json:"second"`
	T      float64 `json:"t"`
	Space  string  `json:"space"`
}

type adjustParams struct {
	Color   string  `json:"color"`
	Percent float64 `json:"percent"`
}

type distanceParams struct {
	First  string `json:"first"`
	Second string `json:"second"`
	Metric string `json:"metric"`
}

// Tools returns the color tool definitions.
func Tools() []*tool.Definition {
	return []*tool.Definition{
		convertTool(),
		contrastTool(),
		paletteTool(),
		blendTool(),
		lightenTool(),
		darkenTool(),
		distanceTool(),
	}
}

func convertTool() *tool.Definition {
	return tool.New("color_convert",
		"Converts a color to hex, RGB, HSL, HSV and CMYK. Accepts either a hex string or r/g/b channels.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p convertParams
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			if p.Color != "" {
				return Convert(p.Color)
			}
			if p.R == nil || p.G == nil || p.B == nil {
				return nil, tool.Invalidf("color", "pass a hex color or all of r, g and b")
			}
			return ConvertRGB(*p.R, *p.G, *p.B)
		},
		tool.WithCategory(Category),
		tool.WithTags("convert", "hex", "rgb", "hsl", "hsv", "cmyk"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"color": tool.StringProp("Hex color like #FF5733. Takes precedence over r/g/b."),
			"r":     tool.IntProp("Red channel 0-255."),
			"g":     tool.IntProp("Green channel 0-255."),
			"b":     tool.IntProp("Blue channel 0-255."),
		})),
	)
}

func contrastTool() *tool.Definition {
	return tool.New("color_contrast",
		"Computes the WCAG contrast ratio between two hex colors and rates it AAA, AA, AA Large or Fail.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p contrastParams
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return ContrastRatio(p.First, p.Second)
		},
		tool.WithCategory(Category),
		tool.WithTags("contrast", "wcag", "accessibility"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"first":  tool.StringProp("First hex color, usually the text color."),
			"second": tool.StringProp("Second hex color, usually the background."),
		}, "first", "second")),
	)
}

func paletteTool() *tool.Definition {
	return tool.New("color_palette",
		"Generates a color palette as hex strings. Styles: happy, warm, soft, monochrome (needs a base color).",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p paletteParams
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			if p.Count == 0 {
				p.Count = 5
			}
			colors, err := Palette(p.Style, p.Count, p.Base)
			if err != nil {
				return nil, err
			}
			return map[string]any{"colors": colors}, nil
		},
		tool.WithCategory(Category),
		tool.WithTags("palette", "generate"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"style": tool.EnumProp("Palette style.", StyleHappy, StyleWarm, StyleSoft, StyleMonochrome),
			"count": tool.IntProp("Number of colors, 1-64. Defaults to 5."),
			"base":  tool.StringProp("Base hex color for the monochrome style."),
		})),
	)
}

func blendTool() *tool.Definition {
	return tool.New("color_blend",
		"Blends two hex colors at position t in [0,1]. Spaces: lab (default), rgb, hcl.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p blendParams
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			hex, err := Blend(p.First, p.Second, p.T, p.Space)
			if err != nil {
				return nil, err
			}
			return map[string]string{"color": hex}, nil
		},
		tool.WithCategory(Category),
		tool.WithTags("blend", "mix", "gradient"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"first":  tool.StringProp("First hex color."),
			"second": tool.StringProp("Second hex color."),
			"t":      tool.NumberProp("Blend position between 0 (first) and 1 (second)."),
			"space":  tool.EnumProp("Blend space.", SpaceLab, SpaceRGB, SpaceHCL),
		}, "first", "second")),
	)
}

func lightenTool() *tool.Definition {
	return tool.New("color_lighten",
		"Lightens a hex color by the given percent of HSL lightness.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p adjustParams
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			hex, err := Lighten(p.Color, p.Percent)
			if err != nil {
				return nil, err
			}
			return map[string]string{"color": hex}, nil
		},
		tool.WithCategory(Category),
		tool.WithTags("lighten", "adjust"),
		tool.WithSchema(adjustSchema("lighten")),
	)
}

func darkenTool() *tool.Definition {
	return tool.New("color_darken",
		"Darkens a hex color by the given percent of HSL lightness.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p adjustParams
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			hex, err := Darken(p.Color, p.Percent)
			if err != nil {
				return nil, err
			}
			return map[string]string{"color": hex}, nil
		},
		tool.WithCategory(Category),
		tool.WithTags("darken", "adjust"),
		tool.WithSchema(adjustSchema("darken")),
	)
}

func adjustSchema(verb string) *tool.Schema {
	return tool.NewSchema(map[string]*tool.Property{
		"color":   tool.StringProp("Hex color to " + verb + "."),
		"percent": tool.NumberProp("Lightness points to shift, 0-100."),
	}, "color", "percent")
}

func distanceTool() *tool.Definition {
	return tool.New("color_distance",
		"Computes the perceptual distance between two hex colors. Metrics: ciede2000 (default), cie94, cie76.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p distanceParams
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			d, err := Distance(p.First, p.Second, p.Metric)
			if err != nil {
				return nil, err
			}
			return map[string]float64{"distance": d}, nil
		},
		tool.WithCategory(Category),
		tool.WithTags("distance", "difference"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"first":  tool.StringProp("First hex color."),
			"second": tool.StringProp("Second hex color."),
			"metric": tool.EnumProp("Distance metric.", MetricCIEDE2k, MetricCIE94, MetricCIE76),
		}, "first", "second")),
	)
}
