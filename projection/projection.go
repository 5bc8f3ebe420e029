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

// Package projection implements the pure coordinate arithmetic that
// maps a voxel position inside a box of known dimensions to a 2D pixel
// position, for each of the four supported map modes. It has no
// knowledge of chunks, blocks, or images — it is Cube's arithmetic
// only.
package projection

// Mode selects one of the four supported projections.
type Mode int

const (
	Top Mode = iota
	Oblique
	ObliqueAngle
	Isometric
)

// Rotation is one of the four axis-aligned rotations applied to a
// position before projection.
type Rotation int

const (
	Rot0 Rotation = 0
	Rot90 Rotation = 90
	Rot180 Rotation = 180
	Rot270 Rotation = 270
)

// Point3 is an integer voxel coordinate.
type Point3 struct {
	X, Y, Z int
}

// Point2 is an integer pixel coordinate with a total order: lexicographic
// on X then Y, so it can be used as a map key with deterministic iteration
// when sorted.
type Point2 struct {
	X, Y int
}

// Less implements the total order required by spec for use as a map key.
func (p Point2) Less(o Point2) bool {
	if p.X != o.X {
		return p.X < o.X
	}
	return p.Y < o.Y
}

// Cube holds a voxel box's dimensions and the mode used to project
// points within it.
type Cube struct {
	BX, BY, BZ int
	Mode       Mode
}

// Dimensions returns the canvas width and height for this cube's mode.
func (c Cube) Dimensions() (w, h int) {
	switch c.Mode {
	case Top:
		return c.BX, c.BZ
	case Oblique:
		return c.BX, c.BY + c.BZ
	case ObliqueAngle:
		return c.BX + c.BZ, c.BX + c.BY + c.BZ
	case Isometric:
		// One row more than BX+BZ+2*BY: Project sends (0,0,0) to
		// y = BX+BZ+2*BY, which must still be inside the canvas.
		return 2 * (c.BX + c.BZ), c.BX + c.BZ + 2*c.BY + 1
	default:
		return 0, 0
	}
}

// Rotate permutes/negates the X/Z components of p for rotation r,
// about the origin. It does not touch Y. Applying Rot90 four times in
// succession must return the original point (§8 invariant 7); the
// sign convention below satisfies that by construction: Rot90 maps
// (x, z) to (-z, x), and four such steps give (x, z) back.
func Rotate(p Point3, r Rotation) Point3 {
	x, z := p.X, p.Z
	switch r {
	case Rot0:
		return p
	case Rot90:
		return Point3{X: -z, Y: p.Y, Z: x}
	case Rot180:
		return Point3{X: -x, Y: p.Y, Z: -z}
	case Rot270:
		return Point3{X: z, Y: p.Y, Z: -x}
	default:
		return p
	}
}

// Project maps a point inside the box to a pixel coordinate for the
// cube's mode. ok is false if the projected coordinate would be
// negative (the caller must skip the operation rather than wrap or
// clamp it, per §4.3).
func (c Cube) Project(p Point3) (x, y int, ok bool) {
	switch c.Mode {
	case Top:
		x, y = p.X, p.Z
	case Oblique:
		x, y = p.X, (c.BY-p.Y)+p.Z
	case ObliqueAngle:
		x, y = p.X+p.Z, (c.BX-p.X)+(c.BY-p.Y)+p.Z
	case Isometric:
		x, y = 2*(p.X+p.Z), (c.BX-p.X)+(c.BZ-p.Z)+2*(c.BY-p.Y)
	default:
		return 0, 0, false
	}
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	return x, y, true
}
