package image

import (
	"fmt"
	stdimage "image"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/smallnest/agenttools/tool"

	// Header-only decoders for image_info.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// InfoResult describes an image file without decoding its pixels.
type InfoResult struct {
	Path        string  `json:"path"`
	Format      string  `json:"format"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	AspectRatio float64 `json:"aspect_ratio"`
	SizeBytes   int64   `json:"size_bytes"`
}

// WriteResult reports an image written to disk.
type WriteResult struct {
	Path      string `json:"path"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	SizeBytes int64  `json:"size_bytes"`
	Replaced  bool   `json:"replaced"`
}

// DominantColorResult is the average color of an image.
type DominantColorResult struct {
	Path string `json:"path"`
	Hex  string `json:"hex"`
	R    int    `json:"r"`
	G    int    `json:"g"`
	B    int    `json:"b"`
}

// Info probes dimensions and format from the image header.
func Info(path string) (*InfoResult, error) {
	info, err := statImage(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	cfg, format, err := stdimage.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("decode image header %s: %w", path, err)
	}
	ratio := 0.0
	if cfg.Height > 0 {
		ratio = math.Round(float64(cfg.Width)/float64(cfg.Height)*100) / 100
	}
	return &InfoResult{
		Path:        path,
		Format:      format,
		Width:       cfg.Width,
		Height:      cfg.Height,
		AspectRatio: ratio,
		SizeBytes:   info.Size(),
	}, nil
}

// Resize scales an image to width×height. A zero dimension preserves the
// aspect ratio; both zero is an error. Lanczos resampling.
func Resize(src, dst string, width, height int, skipConfirm bool) (*WriteResult, error) {
	if width < 0 || height < 0 {
		return nil, tool.Invalidf("width", "dimensions must not be negative")
	}
	if width == 0 && height == 0 {
		return nil, tool.Invalidf("width", "pass width, height or both")
	}
	img, err := openImage(src)
	if err != nil {
		return nil, err
	}
	return saveImage(imaging.Resize(img, width, height, imaging.Lanczos), src, dst, skipConfirm)
}

// Thumbnail shrinks an image to fit within width×height, keeping aspect.
func Thumbnail(src, dst string, width, height int, skipConfirm bool) (*WriteResult, error) {
	if width <= 0 || height <= 0 {
		return nil, tool.Invalidf("width", "both dimensions must be positive")
	}
	img, err := openImage(src)
	if err != nil {
		return nil, err
	}
	return saveImage(imaging.Fit(img, width, height, imaging.Lanczos), src, dst, skipConfirm)
}

// Convert re-encodes an image in the format implied by the destination
// extension. quality applies to jpeg output only; 0 means the library
// default.
func Convert(src, dst string, quality int, skipConfirm bool) (*WriteResult, error) {
	if quality < 0 || quality > 100 {
		return nil, tool.Invalidf("quality", "must be between 0 and 100")
	}
	img, err := openImage(src)
	if err != nil {
		return nil, err
	}
	if _, err := imaging.FormatFromFilename(dst); err != nil {
		return nil, tool.Invalidf("destination", "unsupported image extension %q", filepath.Ext(dst))
	}
	var opts []imaging.EncodeOption
	if quality > 0 {
		opts = append(opts, imaging.JPEGQuality(quality))
	}
	return saveImageOpts(img, src, dst, skipConfirm, opts...)
}

// Rotate turns an image counter-clockwise by the given angle in degrees.
// Right angles rotate losslessly; any other angle fills the exposed
// corners with the background hex color (default white).
func Rotate(src, dst string, angle float64, background string, skipConfirm bool) (*WriteResult, error) {
	img, err := openImage(src)
	if err != nil {
		return nil, err
	}

	var rotated stdimage.Image
	switch math.Mod(angle, 360) {
	case 0:
		rotated = img
	case 90, -270:
		rotated = imaging.Rotate90(img)
	case 180, -180:
		rotated = imaging.Rotate180(img)
	case 270, -90:
		rotated = imaging.Rotate270(img)
	default:
		bg := color.Color(color.White)
		if background != "" {
			c, err := colorful.Hex(normalizeHex(background))
			if err != nil {
				return nil, tool.Invalidf("background", "not a hex color: %q", background)
			}
			bg = c
		}
		rotated = imaging.Rotate(img, angle, bg)
	}
	return saveImage(rotated, src, dst, skipConfirm)
}

// Flip mirrors an image. direction is "horizontal" or "vertical".
func Flip(src, dst, direction string, skipConfirm bool) (*WriteResult, error) {
	img, err := openImage(src)
	if err != nil {
		return nil, err
	}
	var flipped stdimage.Image
	switch direction {
	case "horizontal", "":
		flipped = imaging.FlipH(img)
	case "vertical":
		flipped = imaging.FlipV(img)
	default:
		return nil, tool.Invalidf("direction", "must be horizontal or vertical, got %q", direction)
	}
	return saveImage(flipped, src, dst, skipConfirm)
}

// Grayscale converts an image to grayscale.
func Grayscale(src, dst string, skipConfirm bool) (*WriteResult, error) {
	img, err := openImage(src)
	if err != nil {
		return nil, err
	}
	return saveImage(imaging.Grayscale(img), src, dst, skipConfirm)
}

// Crop cuts a rectangle out of an image. With centered true, x and y are
// ignored and a width×height window is taken from the middle.
func Crop(src, dst string, x, y, width, height int, centered, skipConfirm bool) (*WriteResult, error) {
	if width <= 0 || height <= 0 {
		return nil, tool.Invalidf("width", "both dimensions must be positive")
	}
	img, err := openImage(src)
	if err != nil {
		return nil, err
	}
	var cropped stdimage.Image
	if centered {
		cropped = imaging.CropCenter(img, width, height)
	} else {
		if x < 0 || y < 0 {
			return nil, tool.Invalidf("x", "offsets must not be negative")
		}
		rect := stdimage.Rect(x, y, x+width, y+height)
		if !rect.In(img.Bounds()) {
			return nil, tool.Invalidf("width", "crop rectangle %v exceeds image bounds %v", rect, img.Bounds())
		}
		cropped = imaging.Crop(img, rect)
	}
	return saveImage(cropped, src, dst, skipConfirm)
}

// DominantColor reports the average color of an image. The image is first
// shrunk so the averaging cost stays flat regardless of input size.
func DominantColor(path string) (*DominantColorResult, error) {
	img, err := openImage(path)
	if err != nil {
		return nil, err
	}
	small := imaging.Resize(img, 64, 0, imaging.Box)
	bounds := small.Bounds()

	var r, g, b, n uint64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			cr, cg, cb, _ := small.At(x, y).RGBA()
			r += uint64(cr >> 8)
			g += uint64(cg >> 8)
			b += uint64(cb >> 8)
			n++
		}
	}
	if n == 0 {
		return nil, tool.Invalidf("path", "image has no pixels")
	}
	avg := colorful.Color{
		R: float64(r/n) / 255,
		G: float64(g/n) / 255,
		B: float64(b/n) / 255,
	}
	return &DominantColorResult{
		Path: path,
		Hex:  strings.ToUpper(avg.Hex()),
		R:    int(r / n),
		G:    int(g / n),
		B:    int(b / n),
	}, nil
}

func statImage(path string) (os.FileInfo, error) {
	if path == "" {
		return nil, tool.Invalidf("path", "must not be empty")
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", tool.ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, tool.Invalidf("path", "%s is a directory", path)
	}
	return info, nil
}

func openImage(path string) (stdimage.Image, error) {
	if _, err := statImage(path); err != nil {
		return nil, err
	}
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return img, nil
}

func saveImage(img stdimage.Image, src, dst string, skipConfirm bool) (*WriteResult, error) {
	return saveImageOpts(img, src, dst, skipConfirm)
}

// saveImageOpts writes img to dst. An empty dst overwrites the source,
// which still requires skip_confirm like any other overwrite.
func saveImageOpts(img stdimage.Image, src, dst string, skipConfirm bool, opts ...imaging.EncodeOption) (*WriteResult, error) {
	if dst == "" {
		dst = src
	}
	replaced := false
	if info, err := os.Stat(dst); err == nil {
		if info.IsDir() {
			return nil, tool.Invalidf("destination", "%s is a directory", dst)
		}
		if !skipConfirm {
			return nil, fmt.Errorf("%s exists: %w", dst, tool.ErrConfirmRequired)
		}
		replaced = true
	}
	if err := imaging.Save(img, dst, opts...); err != nil {
		return nil, fmt.Errorf("save image %s: %w", dst, err)
	}
	info, err := os.Stat(dst)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", dst, err)
	}
	bounds := img.Bounds()
	return &WriteResult{
		Path:      dst,
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
		SizeBytes: info.Size(),
		Replaced:  replaced,
	}, nil
}

func normalizeHex(hex string) string {
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	return strings.ToLower(hex)
}
