// Package color provides color conversion, contrast and palette tools.
//
// Conversions cover hex, RGB, HSL, HSV and CMYK. Hue is expressed in
// degrees and every other channel of the derived spaces as a percentage, so
// results read the way design tools print them. Round trips through HSL,
// HSV or CMYK stay within one unit per RGB channel.
//
//	conv, _ := color.Convert("#FF5733")
//	// conv.RGB  == color.RGB{R: 255, G: 87, B: 51}
//	// conv.HSL  == color.HSL{H: 10.6, S: 100, L: 60}
//
// ContrastRatio implements the WCAG 2.x contrast formula and maps the ratio
// onto the usual conformance levels:
//
//	res, _ := color.ContrastRatio("#000000", "#FFFFFF")
//	// res.Ratio == 21.0, res.Rating == "AAA"
//
// Palette, Blend, Lighten, Darken and Distance wrap go-colorful's generators
// and CIE metrics. Blending defaults to the Lab space because it produces
// perceptually even gradients.
//
// Tools returns everything in this package as agent-callable definitions:
//
//	reg := tool.NewRegistry(color.Tools()...)
//	out, _ := reg.Execute(ctx, "color_contrast",
//		`{"first": "#336699", "second": "#FFFFFF"}`)
package color
