// Package render draws text, progress rings and weather icons on 1-bit frames.
//
// All functions paint black on whatever is already in the destination; the
// caller is responsible for clearing the canvas.
package render
