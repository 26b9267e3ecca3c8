// Package image provides raster image tools: probing dimensions, resizing,
// format conversion, rotation, flipping, grayscale, cropping and dominant
// color extraction.
//
// All pixel work goes through disintegration/imaging; this package adds
// input validation, the skip_confirm overwrite gate shared with the file
// tools, and JSON-shaped results. image_info decodes only the header, so
// probing a large file is cheap.
package image
