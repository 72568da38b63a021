/*
 * Copyright (c) 2025 by the symbolrender authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"symbolrender/internal/symbol"
)

func renderSVG(t *testing.T, opts Options, sym *symbol.Symbol) string {
	t.Helper()
	var buf bytes.Buffer
	if err := NewSVG(opts).Render(&buf, sym); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func TestRenderFullDocument(t *testing.T) {
	sym := &symbol.Symbol{
		Width:  10,
		Height: 10,
		Rects:  []symbol.Rect{{X: 0, Y: 0, W: 10, H: 10}},
	}
	opts := Options{Magnification: 2, Ink: symbol.Black, Paper: symbol.White, Margin: 5}

	want := strings.Join([]string{
		`<?xml version="1.0" standalone="no"?>`,
		`<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN"`,
		`   "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd">`,
		`<svg width="30" height="30" version="1.1" xmlns="http://www.w3.org/2000/svg">`,
		`   <desc>Generated Symbol</desc>`,
		`   <g id="barcode" fill="#000000">`,
		`      <rect x="0" y="0" width="30.00" height="30.00" fill="#FFFFFF" />`,
		`      <rect x="5.00" y="5.00" width="20.00" height="20.00" />`,
		`   </g>`,
		`</svg>`,
	}, "\n") + "\n"

	if got := renderSVG(t, opts, sym); got != want {
		t.Fatalf("unexpected document:\n--- got ---\n%s--- want ---\n%s", got, want)
	}
}

func TestDocumentSize(t *testing.T) {
	cases := []struct {
		w, h   float64
		mag    float64
		margin int
		wantW  int
		wantH  int
	}{
		{10, 10, 2, 5, 30, 30},
		{33, 20, 1, 0, 33, 20},
		{10.5, 10.5, 1, 0, 10, 10}, // fractional dims truncate
		{21, 9, 2.5, 3, 58, 28},    // 52.5 -> 52, 22.5 -> 22
	}
	for _, c := range cases {
		opts := Options{Magnification: c.mag, Margin: c.margin}
		w, h := opts.docSize(&symbol.Symbol{Width: c.w, Height: c.h})
		if w != c.wantW || h != c.wantH {
			t.Fatalf("docSize(%gx%g, mag %g, margin %d) = %dx%d, want %dx%d",
				c.w, c.h, c.mag, c.margin, w, h, c.wantW, c.wantH)
		}
	}
}

func TestDescUsesContentAndEscapes(t *testing.T) {
	opts := DefaultOptions()
	got := renderSVG(t, opts, &symbol.Symbol{Content: "A<B&C", Width: 1, Height: 1})
	if !strings.Contains(got, "<desc>A&lt;B&amp;C</desc>") {
		t.Fatalf("content not carried into desc, got:\n%s", got)
	}

	got = renderSVG(t, opts, &symbol.Symbol{Width: 1, Height: 1})
	if !strings.Contains(got, "<desc>Generated Symbol</desc>") {
		t.Fatalf("empty content should fall back to the placeholder title, got:\n%s", got)
	}
}

func TestTextElement(t *testing.T) {
	sym := &symbol.Symbol{
		Width:    20,
		Height:   12,
		FontName: "Helvetica",
		FontSize: 8,
		Texts:    []symbol.TextBox{{X: 5, Y: 11, Text: "A1B2"}},
	}
	got := renderSVG(t, Options{Magnification: 2, Ink: symbol.Black, Paper: symbol.White}, sym)

	want := `      <text x="10.00" y="22.00" text-anchor="middle"
         font-family="Helvetica" font-size="16.00" fill="000000">
         A1B2
      </text>
`
	if !strings.Contains(got, want) {
		t.Fatalf("text element missing or malformed, got:\n%s", got)
	}
}

func TestTargetFillAlternation(t *testing.T) {
	sym := &symbol.Symbol{
		Width:  10,
		Height: 10,
		Targets: []symbol.Target{
			{X: 0, Y: 0, D: 10},
			{X: 1, Y: 1, D: 8},
			{X: 2, Y: 2, D: 6},
		},
	}
	got := renderSVG(t, DefaultOptions(), sym)

	var fills []string
	for _, line := range strings.Split(got, "\n") {
		if !strings.Contains(line, "<circle") {
			continue
		}
		i := strings.Index(line, `fill="`)
		if i < 0 {
			t.Fatalf("circle without fill: %s", line)
		}
		fills = append(fills, line[i+len(`fill="`):i+len(`fill="`)+7])
	}
	want := []string{"#000000", "#FFFFFF", "#000000"}
	if len(fills) != len(want) {
		t.Fatalf("got %d circles, want %d", len(fills), len(want))
	}
	for i := range want {
		if fills[i] != want[i] {
			t.Fatalf("circle %d fill = %s, want %s", i, fills[i], want[i])
		}
	}
}

func TestNoTargetsNoCircles(t *testing.T) {
	got := renderSVG(t, DefaultOptions(), &symbol.Symbol{Width: 4, Height: 4})
	if strings.Contains(got, "<circle") {
		t.Fatalf("no circle elements expected, got:\n%s", got)
	}
}

func TestTargetGeometry(t *testing.T) {
	// Center derives from the bounding box using the diameter on both
	// axes; radius is half the scaled diameter.
	sym := &symbol.Symbol{
		Width:   10,
		Height:  10,
		Targets: []symbol.Target{{X: 1, Y: 2, D: 6}},
	}
	got := renderSVG(t, Options{Magnification: 2, Ink: symbol.Black, Paper: symbol.White, Margin: 1}, sym)
	want := `<circle cx="9.00" cy="11.00" r="6.00" fill="#000000" />`
	if !strings.Contains(got, want) {
		t.Fatalf("want %s in:\n%s", want, got)
	}
}

func TestHexagonPath(t *testing.T) {
	hx := symbol.Hexagon{
		X: [6]float64{1, 2, 2, 1, 0, 0},
		Y: [6]float64{0, 0.5, 1.5, 2, 1.5, 0.5},
	}
	// Content and label text may themselves contain "M " or "Z"; the
	// command counts must only see the path data.
	sym := &symbol.Symbol{
		Content:  "SIZE M Z",
		Width:    2,
		Height:   2,
		FontName: "Helvetica",
		FontSize: 1,
		Texts:    []symbol.TextBox{{X: 1, Y: 2, Text: "M Z L"}},
		Hexagons: []symbol.Hexagon{hx},
	}
	got := renderSVG(t, Options{Magnification: 2, Ink: symbol.Black, Paper: symbol.White, Margin: 1}, sym)

	want := `      <path d="M 3.00 1.00 L 5.00 2.00 L 5.00 4.00 L 3.00 5.00 L 1.00 4.00 L 1.00 2.00 Z" />`
	if !strings.Contains(got, want) {
		t.Fatalf("want path line %q in:\n%s", want, got)
	}

	i := strings.Index(got, `<path d="`)
	if i < 0 {
		t.Fatalf("no path element in:\n%s", got)
	}
	d := got[i+len(`<path d="`):]
	j := strings.Index(d, `"`)
	if j < 0 {
		t.Fatalf("unterminated path data in:\n%s", got)
	}
	d = d[:j]
	if n := strings.Count(d, "M "); n != 1 {
		t.Fatalf("want exactly one move-to, got %d in %q", n, d)
	}
	if n := strings.Count(d, "L "); n != 5 {
		t.Fatalf("want exactly five line-tos, got %d in %q", n, d)
	}
	if n := strings.Count(d, "Z"); n != 1 {
		t.Fatalf("want exactly one close, got %d in %q", n, d)
	}
}

func TestTwoDecimalRoundingTiesToEven(t *testing.T) {
	// Exact halfway decimals round to the even neighbor; this pins the
	// byte-reproducibility contract of the formatter.
	sym := &symbol.Symbol{
		Width:  2,
		Height: 2,
		Rects: []symbol.Rect{
			{X: 0.125, Y: 0.375, W: 0.625, H: 0.875},
		},
	}
	got := renderSVG(t, DefaultOptions(), sym)
	want := `<rect x="0.12" y="0.38" width="0.62" height="0.88" />`
	if !strings.Contains(got, want) {
		t.Fatalf("want %s in:\n%s", want, got)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	sym := &symbol.Symbol{
		Content:  "ABC123",
		Width:    30,
		Height:   20,
		FontName: "Monospaced",
		FontSize: 9,
		Rects:    []symbol.Rect{{X: 0, Y: 0, W: 1, H: 15}, {X: 2.5, Y: 0, W: 1.5, H: 15}},
		Texts:    []symbol.TextBox{{X: 15, Y: 19, Text: "ABC123"}},
		Targets:  []symbol.Target{{X: 10, Y: 5, D: 8}, {X: 12, Y: 7, D: 4}},
		Hexagons: []symbol.Hexagon{{X: [6]float64{1, 2, 2, 1, 0, 0}, Y: [6]float64{0, 1, 2, 3, 2, 1}}},
	}
	opts := Options{Magnification: 1.5, Ink: symbol.Color{R: 0x12, G: 0x34, B: 0x56}, Paper: symbol.White, Margin: 2}
	a := renderSVG(t, opts, sym)
	b := renderSVG(t, opts, sym)
	if a != b {
		t.Fatalf("two renders of the same input differ")
	}
}

type failWriter struct{ err error }

func (f failWriter) Write(p []byte) (int, error) { return 0, f.err }

func TestWriteFailurePropagates(t *testing.T) {
	sinkErr := errors.New("sink closed")
	sym := &symbol.Symbol{Width: 10, Height: 10, Rects: []symbol.Rect{{W: 10, H: 10}}}
	err := NewSVG(DefaultOptions()).Render(failWriter{err: sinkErr}, sym)
	if err == nil {
		t.Fatalf("expected an error from a failing sink")
	}
	if !errors.Is(err, sinkErr) {
		t.Fatalf("sink error not propagated, got: %v", err)
	}
}
