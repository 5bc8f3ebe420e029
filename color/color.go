/*
	cartograph, voxel-world map renderer
	Copyright (C) 2026 cartograph contributors

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU Affero General Public License as published
	by the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU Affero General Public License for more details.

	You should have received a copy of the GNU Affero General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

// Package color implements the RGBA pixel type and alpha-over blending
// used throughout the renderer. It intentionally does not implement the
// standard library's color.Color interface: channels here are plain
// bytes with saturating/truncating arithmetic defined precisely by the
// renderer, not by color.Model conversion rules.
package color

// Color is a 32-bit RGBA pixel, channel order R, G, B, A.
type Color struct {
	R, G, B, A uint8
}

// RGBA constructs an opaque-or-not color from four channel values.
func RGBA(r, g, b, a uint8) Color {
	return Color{r, g, b, a}
}

// Invisible is the zero value: fully transparent, carries no color.
var Invisible = Color{}

func (c Color) IsInvisible() bool {
	return c.A == 0
}

func (c Color) IsTransparent() bool {
	return c.A > 0 && c.A < 255
}

func (c Color) IsOpaque() bool {
	return c.A == 255
}

// Read decodes a Color from 4 bytes (R, G, B, A).
func Read(b []byte) Color {
	return Color{b[0], b[1], b[2], b[3]}
}

// Write encodes c into b[0:4] as R, G, B, A.
func (c Color) Write(b []byte) {
	b[0], b[1], b[2], b[3] = c.R, c.G, c.B, c.A
}

// Blend composites src over dst using the alpha-over operator:
//
//	result.a = src.a + dst.a*(1 - src.a/255)
//	result.c = (src.c*src.a + dst.c*dst.a*(1-src.a/255)) / result.a   (result.a > 0)
//
// Arithmetic is 8-bit integer; intermediate products are carried in
// int and divisions truncate toward zero. A fully invisible src leaves
// dst unchanged; a fully opaque src (dst's alpha term becomes 0)
// overwrites dst entirely.
func (dst Color) Blend(src Color) Color {
	if src.IsInvisible() {
		return dst
	}
	if src.IsOpaque() {
		return src
	}
	sa := int(src.A)
	da := int(dst.A) * (255 - sa) / 255
	outA := sa + da
	if outA == 0 {
		return Color{}
	}
	blendCh := func(sc, dc uint8) uint8 {
		v := (int(sc)*sa + int(dc)*da) / outA
		return uint8(v)
	}
	return Color{
		R: blendCh(src.R, dst.R),
		G: blendCh(src.G, dst.G),
		B: blendCh(src.B, dst.B),
		A: uint8(outA),
	}
}

func sub(c uint8, k int) uint8 {
	v := int(c) - k
	if v < 0 {
		return 0
	}
	return uint8(v)
}

// Darken subtracts k (saturating at 0) from the R, G, B channels and
// leaves alpha untouched.
func (c Color) Darken(k int) Color {
	return Color{sub(c.R, k), sub(c.G, k), sub(c.B, k), c.A}
}

// Mul scales the R, G, B channels by factor (0..1, represented as a
// float in [0,1]) and leaves alpha untouched. Used by night-mode light
// shading in the chunk renderer.
func (c Color) Mul(factor float64) Color {
	scale := func(v uint8) uint8 {
		r := float64(v) * factor
		if r < 0 {
			r = 0
		}
		if r > 255 {
			r = 255
		}
		return uint8(r)
	}
	return Color{scale(c.R), scale(c.G), scale(c.B), c.A}
}
