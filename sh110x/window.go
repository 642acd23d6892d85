// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sh110x

import "image"

// windowEmpty is beyond any valid coordinate so the first mark always
// replaces it.
const windowEmpty = 1024

// window is the inclusive bounding box of the pixels modified since the last
// successful flush, in physical coordinates.
//
// It may be larger than the modified area but never smaller.
type window struct {
	x1, y1 int
	x2, y2 int
}

// mark widens the window to include (x, y).
func (w *window) mark(x, y int) {
	w.x1 = min(w.x1, x)
	w.y1 = min(w.y1, y)
	w.x2 = max(w.x2, x)
	w.y2 = max(w.y2, y)
}

// all covers a whole panel of width x height pixels.
func (w *window) all(width, height int) {
	w.mark(0, 0)
	w.mark(width-1, height-1)
}

func (w *window) empty() bool {
	return w.x2 < w.x1
}

func (w *window) reset() {
	w.x1, w.y1 = windowEmpty, windowEmpty
	w.x2, w.y2 = -1, -1
}

// rect returns the window as an image.Rectangle, Max being exclusive.
func (w *window) rect() image.Rectangle {
	if w.empty() {
		return image.Rectangle{}
	}
	return image.Rect(w.x1, w.y1, w.x2+1, w.y2+1)
}
