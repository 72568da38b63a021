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
	"image/color"
	"io"
	"os"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"symbolrender/internal/symbol"
)

// PNG renders a symbol as a raster image, one pixel per output unit.
// Shape order, the coordinate transform and the target-ring color
// alternation match the SVG backend; only the medium differs.
//
// FontFile optionally names a TrueType/OpenType file used for text
// labels. The symbol's FontName is not resolved against installed
// system fonts; without a FontFile a small built-in face is used, which
// is only legible at larger magnifications.
type PNG struct {
	Options
	FontFile string
}

// NewPNG returns a PNG renderer with the given options.
func NewPNG(opts Options) *PNG { return &PNG{Options: opts} }

// Render rasterizes the symbol and PNG-encodes it to w.
func (r *PNG) Render(w io.Writer, sym *symbol.Symbol) error {
	width, height := r.docSize(sym)
	if width < 1 || height < 1 {
		return fmt.Errorf("render png: degenerate document size %dx%d", width, height)
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(rgba(r.Paper))
	dc.Clear()

	ink := rgba(r.Ink)

	dc.SetColor(ink)
	for _, rc := range sym.Rects {
		dc.DrawRectangle(r.place(rc.X), r.place(rc.Y), r.scale(rc.W), r.scale(rc.H))
		dc.Fill()
	}

	if len(sym.Texts) > 0 {
		face, err := r.fontFace(sym.FontSize)
		if err != nil {
			return err
		}
		if face != nil {
			dc.SetFontFace(face)
			defer face.Close()
		}
		dc.SetColor(ink)
		for _, tb := range sym.Texts {
			dc.DrawStringAnchored(tb.Text, r.place(tb.X), r.place(tb.Y), 0.5, 0)
		}
	}

	for i, tg := range sym.Targets {
		if i&1 == 0 {
			dc.SetColor(ink)
		} else {
			dc.SetColor(rgba(r.Paper))
		}
		dc.DrawCircle(r.place(tg.X+tg.D/2), r.place(tg.Y+tg.D/2), r.scale(tg.D/2))
		dc.Fill()
	}

	dc.SetColor(ink)
	for _, hx := range sym.Hexagons {
		for j := 0; j < 6; j++ {
			if j == 0 {
				dc.MoveTo(r.place(hx.X[j]), r.place(hx.Y[j]))
			} else {
				dc.LineTo(r.place(hx.X[j]), r.place(hx.Y[j]))
			}
		}
		dc.ClosePath()
		dc.Fill()
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// fontFace loads FontFile at the magnified point size, or returns nil
// to keep the context's built-in face.
func (r *PNG) fontFace(size float64) (font.Face, error) {
	if r.FontFile == "" {
		return nil, nil
	}
	data, err := os.ReadFile(r.FontFile)
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	ft, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", r.FontFile, err)
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    r.scale(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("build font face: %w", err)
	}
	return face, nil
}

func rgba(c symbol.Color) color.Color {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}
