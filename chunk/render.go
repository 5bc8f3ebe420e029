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

package chunk

import (
	"github.com/maxsupermanhd/cartograph/color"
	"github.com/maxsupermanhd/cartograph/materials"
	"github.com/maxsupermanhd/cartograph/projection"
	"github.com/maxsupermanhd/cartograph/surface"
)

// nightTint is the fixed deep-blue color a zero-light voxel gets in
// night mode, regardless of its material color.
var nightTint = color.RGBA(0x0f, 0x10, 0x2e, 255)

// stripeDelta is the darken amount applied to alternating Y layers in
// striped mode.
const stripeDelta = 0x18

// Settings configures one chunk render, per §4.5.
type Settings struct {
	Mode      projection.Mode
	Rotation  projection.Rotation
	Top, Bottom int // inclusive world-Y render limits
	Night     bool
	// DayFactor scales sky light before combining with block light in
	// night mode: effective = max(sky*DayFactor, block).
	DayFactor float64
	Heightmap bool
	Cave      bool
	Striped   bool
	Excluded  map[int]bool
}

// footprintCube returns the Cube used both to size the chunk's local
// ImageOperations and to project voxels into it. The voxel box is the
// chunk's own footprint (MapX by MapZ) and the render's Y span.
func footprintCube(d *Data, s Settings) projection.Cube {
	return projection.Cube{BX: d.MapX, BY: s.Top - s.Bottom + 1, BZ: d.MapZ, Mode: s.Mode}
}

// Render runs the per-column voxel algorithm of §4.5 over d and
// returns the resulting ImageOperations, sized to the chunk's
// projected footprint under s.Mode.
func Render(d *Data, mat *materials.Table, s Settings) *surface.ImageOperations {
	cube := footprintCube(d, s)
	w, h := cube.Dimensions()
	ops := surface.NewImageOperations(w, h)

	for lx := 0; lx < d.MapX; lx++ {
		for lz := 0; lz < d.MapZ; lz++ {
			renderColumn(d, mat, s, cube, lx, lz, ops)
		}
	}
	return ops
}

func renderColumn(d *Data, mat *materials.Table, s Settings, cube projection.Cube, lx, lz int, ops *surface.ImageOperations) {
	top, bottom := s.Top, s.Bottom
	if top > d.MinY+d.MapY-1 {
		top = d.MinY + d.MapY - 1
	}
	if bottom < d.MinY {
		bottom = d.MinY
	}

	inCave := false
	seenSurface := false
	for y := top; y >= bottom; y-- {
		id := d.Block(lx, y, lz)
		m := mat.Get(id)

		// Excluded materials are always treated as air, cave mode or
		// not, per §4.5 step 5.
		if s.Excluded[id] {
			continue
		}

		if s.Cave {
			if !inCave {
				if !m.Draw || m.IsTransparent {
					continue
				}
				// This is the first opaque block found descending
				// from the top: it becomes the ceiling of the cave
				// system below it and is itself not emitted, per
				// §4.5 step 1.
				inCave = true
				continue
			}
		} else if !m.Draw {
			continue
		}

		if s.Cave && (!m.Draw || id == 0) {
			// Air pocket inside the cave region: nothing to draw,
			// keep descending.
			continue
		}

		isTop := !seenSurface
		seenSurface = true

		base, side := colorFor(d, s, m, lx, y, lz)
		placeVoxel(d, s, cube, lx, y, lz, base, side, isTop, ops)
	}
}

// colorFor resolves a voxel's base and side colors under the active
// render modifiers (night, heightmap, striped), per §4.5 step 3.
func colorFor(d *Data, s Settings, m materials.Material, lx, y, lz int) (base, side color.Color) {
	base, side = m.Base, m.Side

	if s.Heightmap {
		g := heightmapGray(y, s.Bottom, s.Top)
		base, side = g, g
		return
	}

	if s.Night {
		base = nightShade(d, s, base, lx, y, lz)
		side = nightShade(d, s, side, lx, y, lz)
	}

	if s.Striped && (y-s.Bottom)%2 == 1 {
		base = base.Darken(stripeDelta)
		side = side.Darken(stripeDelta)
	}
	return
}

func heightmapGray(y, bottom, top int) color.Color {
	if top <= bottom {
		return color.RGBA(128, 128, 128, 255)
	}
	frac := float64(y-bottom) / float64(top-bottom)
	v := uint8(frac * 255)
	return color.RGBA(v, v, v, 255)
}

func nightShade(d *Data, s Settings, c color.Color, lx, y, lz int) color.Color {
	sky := float64(d.SkyLightAt(lx, y, lz))
	block := float64(d.BlockLightAt(lx, y, lz))
	factor := sky * s.DayFactor
	if block > factor {
		factor = block
	}
	if factor <= 0 {
		return nightTint
	}
	return c.Mul(factor / 15)
}

// placeVoxel emits this voxel's image operations. Top mode is a
// single pixel per voxel (base on the first visible surface in the
// column, side color on everything scanned below it, consistent with
// the dedup bitmap keeping only the first opaque hit). The three
// modes that expose height (Oblique, ObliqueAngle, Isometric) emit a
// base-colored pixel for the voxel's top face and a side-colored
// pixel one row below it for the face beneath, so a column of solid
// blocks reads as a stepped wall rather than a single flat color —
// this is the "two or more operations per voxel" §4.5 calls for; the
// exact pairing isn't pinned down by spec, so this is this renderer's
// own resolution, documented in DESIGN.md.
func placeVoxel(d *Data, s Settings, cube projection.Cube, lx, y, lz int, base, side color.Color, isTop bool, ops *surface.ImageOperations) {
	p := projection.Rotate(projection.Point3{X: lx, Y: y - s.Bottom, Z: lz}, s.Rotation)

	x, yy, ok := cube.Project(p)
	if !ok {
		return
	}

	switch s.Mode {
	case projection.Top:
		c := side
		if isTop {
			c = base
		}
		ops.Add(x, yy, c)
	default:
		ops.Add(x, yy, base)
		ops.Add(x, yy+1, side)
	}
}
