/*
 * Copyright (c) 2025 by the symbolrender authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package render turns a finished symbol geometry into an output
// document. The SVG backend is the primary one and guarantees
// byte-identical output for identical inputs; PNG and PDF backends
// share the same coordinate and color semantics.
//
// A render call is a single synchronous pass over the geometry: each
// shape is transformed, formatted and written immediately, in the fixed
// category order rectangles, texts, targets, hexagons. Write failures
// propagate to the caller and are not retried; bytes already written to
// the sink stay written.
package render

import (
	"io"

	"symbolrender/internal/symbol"
)

// Renderer writes one visual representation of a symbol to w. The sink
// is owned by the caller; renderers flush anything they buffer before
// returning, on success and on failure alike.
type Renderer interface {
	Render(w io.Writer, sym *symbol.Symbol) error
}

// Options is the caller-supplied render configuration, immutable for
// the duration of one render call.
//
// Magnification scales every symbol-space coordinate and dimension.
// Margin is added after scaling as a uniform offset on both axes; it
// shifts positions but never sizes. A zero or negative magnification is
// not rejected: it yields a degenerate but structurally valid document
// and is the caller's responsibility.
type Options struct {
	Magnification float64
	Ink           symbol.Color
	Paper         symbol.Color
	Margin        int
}

// DefaultOptions returns 1:1 scale, black on white, no margin.
func DefaultOptions() Options {
	return Options{Magnification: 1, Ink: symbol.Black, Paper: symbol.White, Margin: 0}
}

// scale maps a symbol-space dimension to output space.
func (o Options) scale(v float64) float64 { return v * o.Magnification }

// place maps a symbol-space position to output space.
func (o Options) place(v float64) float64 { return v*o.Magnification + float64(o.Margin) }

// docSize computes the overall document size. Scaled dimensions are
// truncated to whole units before the margin is added on both sides.
func (o Options) docSize(sym *symbol.Symbol) (w, h int) {
	w = int(sym.Width*o.Magnification) + 2*o.Margin
	h = int(sym.Height*o.Magnification) + 2*o.Margin
	return w, h
}
