/*
 * Copyright (c) 2025 by the symbolrender authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package symbol defines the read-only geometric description of a
// barcode symbol as produced by an upstream encoding engine. The
// renderers in internal/render consume this model and never mutate it,
// so a single Symbol value is safe for concurrent reads by multiple
// simultaneous render calls.
//
// Ordering matters throughout: the shape slices are painted in
// insertion order (later shapes overlay earlier ones), and for Targets
// the index parity additionally selects the fill color. This is a
// contract with the upstream geometry producer, not a general layering
// system; there are no explicit z-index fields.
package symbol

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a plain three-channel RGB color.
type Color struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
}

var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
)

// Hex returns the color as six uppercase hexadecimal characters,
// two per channel in R, G, B order (no leading "#").
func (c Color) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// ParseColor parses "RRGGBB" or "#RRGGBB" (case-insensitive).
func ParseColor(s string) (Color, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return Color{}, fmt.Errorf("parse color %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Rect is an axis-aligned box in symbol-space units.
type Rect struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// TextBox is a human-readable label. X is the horizontal anchor the
// renderers center the text on; Y is the text baseline.
type TextBox struct {
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	Text string  `yaml:"text"`
}

// Target describes one ring of a bullseye finder pattern as the
// bounding box of a circle. D is the diameter; the box is square, so D
// serves for both axes.
type Target struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	D float64 `yaml:"d"`
}

// Hexagon is a closed six-vertex polygon. The fixed-size arrays make a
// wrong vertex count impossible to represent.
type Hexagon struct {
	X [6]float64 `yaml:"x,flow"`
	Y [6]float64 `yaml:"y,flow"`
}

// Symbol is a finished symbol geometry: overall dimensions, label
// typography, and the four shape lists in paint order.
type Symbol struct {
	Content  string  `yaml:"content,omitempty"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	FontName string  `yaml:"fontName,omitempty"`
	FontSize float64 `yaml:"fontSize,omitempty"`

	Rects    []Rect    `yaml:"rects,omitempty"`
	Texts    []TextBox `yaml:"texts,omitempty"`
	Targets  []Target  `yaml:"targets,omitempty"`
	Hexagons []Hexagon `yaml:"hexagons,omitempty"`
}
