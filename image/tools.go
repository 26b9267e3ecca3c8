package image

import (
	"context"
	"encoding/json"

	"github.com/smallnest/agenttools/tool"
)

// Category is the registry category of every tool in this package.
const Category = "image"

type pathParams struct {
	Path string `json:"path"`
}

type resizeParams struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	SkipConfirm bool   `json:"skip_confirm"`
}

type convertParams struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Quality     int    `json:"quality"`
	SkipConfirm bool   `json:"skip_confirm"`
}

type rotateParams struct {
	Source      string  `json:"source"`
	Destination string  `json:"destination"`
	Angle       float64 `json:"angle"`
	Background  string  `json:"background"`
	SkipConfirm bool    `json:"skip_confirm"`
}

type flipParams struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Direction   string `json:"direction"`
	SkipConfirm bool   `json:"skip_confirm"`
}

type grayscaleParams struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	SkipConfirm bool   `json:"skip_confirm"`
}

type cropParams struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Centered    bool   `json:"centered"`
	SkipConfirm bool   `json:"skip_confirm"`
}

// Tools returns the image tool definitions.
func Tools() []*tool.Definition {
	return []*tool.Definition{
		infoTool(),
		resizeTool(),
		thumbnailTool(),
		convertTool(),
		rotateTool(),
		flipTool(),
		grayscaleTool(),
		cropTool(),
		dominantColorTool(),
	}
}

func infoTool() *tool.Definition {
	return tool.New("image_info",
		"Reports width, height, format, aspect ratio and file size of an image without decoding its pixels.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p pathParams
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return Info(p.Path)
		},
		tool.WithCategory(Category),
		tool.WithTags("info", "dimensions", "format"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"path": tool.StringProp("Path of the image file."),
		}, "path")),
	)
}

func resizeTool() *tool.Definition {
	return tool.New("image_resize",
		"Resizes an image with Lanczos resampling. A zero width or height preserves the aspect ratio.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p resizeParams
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return Resize(p.Source, p.Destination, p.Width, p.Height, p.SkipConfirm)
		},
		tool.WithCategory(Category),
		tool.WithTags("resize", "scale"),
		tool.WithWrites(),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"source":       tool.StringProp("Path of the image to resize."),
			"destination":  tool.StringProp("Output path. Empty overwrites the source."),
			"width":        tool.IntProp("Target width in pixels. 0 preserves aspect."),
			"height":       tool.IntProp("Target height in pixels. 0 preserves aspect."),
			"skip_confirm": tool.BoolProp("Allow overwriting an existing destination."),
		}, "source")),
	)
}

func thumbnailTool() *tool.Definition {
	return tool.New("image_thumbnail",
		"Shrinks an image to fit within a bounding box, keeping its aspect ratio.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p resizeParams
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return Thumbnail(p.Source, p.Destination, p.Width, p.Height, p.SkipConfirm)
		},
		tool.WithCategory(Category),
		tool.WithTags("thumbnail", "fit"),
		tool.WithWrites(),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"source":       tool.StringProp("Path of the image."),
			"destination":  tool.StringProp("Output path. Empty overwrites the source."),
			"width":        tool.IntProp("Bounding box width in pixels."),
			"height":       tool.IntProp("Bounding box height in pixels."),
			"skip_confirm": tool.BoolProp("Allow overwriting an existing destination."),
		}, "source", "width", "height")),
	)
}

func convertTool() *tool.Definition {
	return tool.New("image_convert",
		"Re-encodes an image in the format implied by the destination extension (png, jpg, gif, bmp, tiff).",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p convertParams
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return Convert(p.Source, p.Destination, p.Quality, p.SkipConfirm)
		},
		tool.WithCategory(Category),
		tool.WithTags("convert", "format", "encode"),
		tool.WithWrites(),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"source":       tool.StringProp("Path of the image."),
			"destination":  tool.StringProp("Output path whose extension selects the format."),
			"quality":      tool.IntProp("JPEG quality 1-100. 0 uses the default."),
			"skip_confirm": tool.BoolProp("Allow overwriting an existing destination."),
		}, "source", "destination")),
	)
}

func rotateTool() *tool.Definition {
	return tool.New("image_rotate",
		"Rotates an image counter-clockwise. Right angles are lossless; other angles fill corners with a background color.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p rotateParams
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return Rotate(p.Source, p.Destination, p.Angle, p.Background, p.SkipConfirm)
		},
		tool.WithCategory(Category),
		tool.WithTags("rotate"),
		tool.WithWrites(),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"source":       tool.StringProp("Path of the image."),
			"destination":  tool.StringProp("Output path. Empty overwrites the source."),
			"angle":        tool.NumberProp("Counter-clockwise rotation in degrees."),
			"background":   tool.StringProp("Hex fill for non-right angles. Defaults to white."),
			"skip_confirm": tool.BoolProp("Allow overwriting an existing destination."),
		}, "source", "angle")),
	)
}

func flipTool() *tool.Definition {
	return tool.New("image_flip",
		"Mirrors an image horizontally or vertically.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p flipParams
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return Flip(p.Source, p.Destination, p.Direction, p.SkipConfirm)
		},
		tool.WithCategory(Category),
		tool.WithTags("flip", "mirror"),
		tool.WithWrites(),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"source":       tool.StringProp("Path of the image."),
			"destination":  tool.StringProp("Output path. Empty overwrites the source."),
			"direction":    tool.EnumProp("Mirror axis.", "horizontal", "vertical"),
			"skip_confirm": tool.BoolProp("Allow overwriting an existing destination."),
		}, "source")),
	)
}

func grayscaleTool() *tool.Definition {
	return tool.New("image_grayscale",
		"Converts an image to grayscale.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p grayscaleParams
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return Grayscale(p.Source, p.Destination, p.SkipConfirm)
		},
		tool.WithCategory(Category),
		tool.WithTags("grayscale", "desaturate"),
		tool.WithWrites(),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"source":       tool.StringProp("Path of the image."),
			"destination":  tool.StringProp("Output path. Empty overwrites the source."),
			"skip_confirm": tool.BoolProp("Allow overwriting an existing destination."),
		}, "source")),
	)
}

func cropTool() *tool.Definition {
	return tool.New("image_crop",
		"Cuts a rectangle out of an image, either at an x/y offset or centered.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p cropParams
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return Crop(p.Source, p.Destination, p.X, p.Y, p.Width, p.Height, p.Centered, p.SkipConfirm)
		},
		tool.WithCategory(Category),
		tool.WithTags("crop", "cut"),
		tool.WithWrites(),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"source":       tool.StringProp("Path of the image."),
			"destination":  tool.StringProp("Output path. Empty overwrites the source."),
			"x":            tool.IntProp("Left edge of the crop. Ignored when centered."),
			"y":            tool.IntProp("Top edge of the crop. Ignored when centered."),
			"width":        tool.IntProp("Crop width in pixels."),
			"height":       tool.IntProp("Crop height in pixels."),
			"centered":     tool.BoolProp("Take the rectangle from the image center."),
			"skip_confirm": tool.BoolProp("Allow overwriting an existing destination."),
		}, "source", "width", "height")),
	)
}

func dominantColorTool() *tool.Definition {
	return tool.New("image_dominant_color",
		"Reports the average color of an image as hex and RGB channels.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p pathParams
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return DominantColor(p.Path)
		},
		tool.WithCategory(Category),
		tool.WithTags("color", "average", "dominant"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"path": tool.StringProp("Path of the image file."),
		}, "path")),
	)
}
