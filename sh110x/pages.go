// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sh110x

// span is the part of one page that must be sent to the controller.
type span struct {
	page int
	// col is the first column, in frame buffer coordinates.
	col int
	// offset and length select the bytes in the frame buffer.
	offset int
	length int
}

// spans maps the window to the pages it touches on a panel of width columns
// and pages pages.
//
// A page holds 8 rows so the row y2 is in page y2/8, the last one to send.
// When full is true, whole pages are sent regardless of the horizontal
// extent.
func (w *window) spans(width, pages int, full bool) []span {
	if w.empty() {
		return nil
	}
	first := clamp(w.y1/8, 0, pages-1)
	end := clamp(w.y2/8+1, 0, pages)
	colStart := clamp(w.x1, 0, width-1)
	colEnd := clamp(w.x2, 0, width-1)
	if full {
		colStart, colEnd = 0, width-1
	}
	out := make([]span, 0, end-first)
	for p := first; p < end; p++ {
		out = append(out, span{
			page:   p,
			col:    colStart,
			offset: p*width + colStart,
			length: colEnd - colStart + 1,
		})
	}
	return out
}

// addressCmd selects the page and the first column of the next data write.
func addressCmd(page, col int) []byte {
	return []byte{
		_SETPAGEADDR + byte(page),
		_SETHIGHCOLUMN | byte(col>>4),
		_SETLOWCOLUMN | byte(col&0x0F),
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
