// Package pixel implements the 1-bit color and image types used as the e-paper canvas.
//
// The types are compatible with Go's native [color.Color] and [image.Image] / [draw.Image]
// interfaces, so the standard library and golang.org/x/image can draw on them directly.
package pixel
