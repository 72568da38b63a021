/*
 * Copyright (c) 2025 by the symbolrender authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"symbolrender/internal/symbol"
)

// PDF renders a symbol as a single-page vector PDF. The page is sized
// to the computed document dimensions in points and carries the same
// shapes, in the same order and colors, as the SVG backend.
//
// Text uses the built-in Helvetica base font so the output stays
// self-contained without font embedding; the symbol's FontName is kept
// as a hint only.
type PDF struct {
	Options
}

// NewPDF returns a PDF renderer with the given options.
func NewPDF(opts Options) *PDF { return &PDF{Options: opts} }

// Render writes the PDF document to w.
func (r *PDF) Render(w io.Writer, sym *symbol.Symbol) error {
	width, height := r.docSize(sym)

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: float64(width), Ht: float64(height)},
	})
	title := sym.Content
	if title == "" {
		title = defaultTitle
	}
	pdf.SetTitle(title, true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	// Background
	setFill(pdf, r.Paper)
	pdf.Rect(0, 0, float64(width), float64(height), "F")

	setFill(pdf, r.Ink)
	for _, rc := range sym.Rects {
		pdf.Rect(r.place(rc.X), r.place(rc.Y), r.scale(rc.W), r.scale(rc.H), "F")
	}

	if len(sym.Texts) > 0 {
		pdf.SetTextColor(int(r.Ink.R), int(r.Ink.G), int(r.Ink.B))
		pdf.SetFont("Helvetica", "", r.scale(sym.FontSize))
		for _, tb := range sym.Texts {
			// Center on x, baseline at y.
			x := r.place(tb.X) - pdf.GetStringWidth(tb.Text)/2
			pdf.Text(x, r.place(tb.Y), tb.Text)
		}
	}

	for i, tg := range sym.Targets {
		if i&1 == 0 {
			setFill(pdf, r.Ink)
		} else {
			setFill(pdf, r.Paper)
		}
		pdf.Circle(r.place(tg.X+tg.D/2), r.place(tg.Y+tg.D/2), r.scale(tg.D/2), "F")
	}

	setFill(pdf, r.Ink)
	for _, hx := range sym.Hexagons {
		pts := make([]gofpdf.PointType, 6)
		for j := 0; j < 6; j++ {
			pts[j] = gofpdf.PointType{X: r.place(hx.X[j]), Y: r.place(hx.Y[j])}
		}
		pdf.Polygon(pts, "F")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func setFill(pdf *gofpdf.Fpdf, c symbol.Color) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}
