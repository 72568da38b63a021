/*
 * Copyright (c) 2025 by the symbolrender authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"bufio"
	"fmt"
	"io"

	"symbolrender/internal/symbol"
)

// defaultTitle is used for the <desc> element when the symbol carries
// no content string.
const defaultTitle = "Generated Symbol"

// SVG renders a symbol as a self-contained SVG 1.1 document.
//
// Output is deterministic: the same geometry and options always produce
// byte-identical documents. Floating-point attribute values are written
// with exactly two decimals ("%.2f", round to nearest, exact halfway
// decimals to even); document width/height are plain integers; colors
// are six uppercase hex digits.
type SVG struct {
	Options
}

// NewSVG returns an SVG renderer with the given options.
func NewSVG(opts Options) *SVG { return &SVG{Options: opts} }

// Render writes the document to w in one pass. Output is buffered and
// the buffer is flushed on every exit path; on a write failure the
// first error is returned and anything already flushed to w remains.
func (r *SVG) Render(w io.Writer, sym *symbol.Symbol) (err error) {
	width, height := r.docSize(sym)

	title := sym.Content
	if title == "" {
		title = defaultTitle
	}
	ink := r.Ink.Hex()
	paper := r.Paper.Hex()

	bw := bufio.NewWriter(w)
	defer func() {
		if ferr := bw.Flush(); ferr != nil && err == nil {
			err = fmt.Errorf("flush svg: %w", ferr)
		}
	}()

	var werr error
	wf := func(format string, args ...any) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(bw, format, args...)
	}

	// Header
	wf("<?xml version=\"1.0\" standalone=\"no\"?>\n")
	wf("<!DOCTYPE svg PUBLIC \"-//W3C//DTD SVG 1.1//EN\"\n")
	wf("   \"http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd\">\n")
	wf("<svg width=\"%d\" height=\"%d\" version=\"1.1\" xmlns=\"http://www.w3.org/2000/svg\">\n", width, height)
	wf("   <desc>%s</desc>\n", escText(title))
	wf("   <g id=\"barcode\" fill=\"#%s\">\n", ink)
	wf("      <rect x=\"0\" y=\"0\" width=\"%.2f\" height=\"%.2f\" fill=\"#%s\" />\n",
		float64(width), float64(height), paper)

	// Rectangles inherit the group fill.
	for _, rc := range sym.Rects {
		wf("      <rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" />\n",
			r.place(rc.X), r.place(rc.Y), r.scale(rc.W), r.scale(rc.H))
	}

	// Text labels, center-anchored on x with the baseline at y.
	for _, tb := range sym.Texts {
		wf("      <text x=\"%.2f\" y=\"%.2f\" text-anchor=\"middle\"\n",
			r.place(tb.X), r.place(tb.Y))
		wf("         font-family=\"%s\" font-size=\"%.2f\" fill=\"%s\">\n",
			escAttr(sym.FontName), r.scale(sym.FontSize), ink)
		wf("         %s\n", escText(tb.Text))
		wf("      </text>\n")
	}

	// Bullseye rings alternate ink/paper by index parity.
	for i, tg := range sym.Targets {
		fill := ink
		if i&1 == 1 {
			fill = paper
		}
		wf("      <circle cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\" fill=\"#%s\" />\n",
			r.place(tg.X+tg.D/2), r.place(tg.Y+tg.D/2), r.scale(tg.D/2), fill)
	}

	// Hexagons: one closed path each, move-to then five line-tos.
	for _, hx := range sym.Hexagons {
		wf("      <path d=\"")
		for j := 0; j < 6; j++ {
			if j == 0 {
				wf("M ")
			} else {
				wf("L ")
			}
			wf("%.2f %.2f ", r.place(hx.X[j]), r.place(hx.Y[j]))
		}
		wf("Z\" />\n")
	}

	// Footer
	wf("   </g>\n")
	wf("</svg>\n")

	if werr != nil {
		return fmt.Errorf("write svg: %w", werr)
	}
	return nil
}

func escAttr(s string) string {
	// naive escaping sufficient for font names and similar short values
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch ch {
		case '&':
			out = append(out, '&', 'a', 'm', 'p', ';')
		case '"':
			out = append(out, '&', 'q', 'u', 'o', 't', ';')
		case '<':
			out = append(out, '&', 'l', 't', ';')
		case '\n':
			out = append(out, ' ')
		case '\r':
			// skip
		default:
			out = append(out, ch)
		}
	}
	return string(out)
}

func escText(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch ch {
		case '&':
			out = append(out, '&', 'a', 'm', 'p', ';')
		case '<':
			out = append(out, '&', 'l', 't', ';')
		case '>':
			out = append(out, '&', 'g', 't', ';')
		default:
			out = append(out, ch)
		}
	}
	return string(out)
}
