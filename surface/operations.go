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

package surface

import "github.com/maxsupermanhd/cartograph/color"

// ImageOperation is one deferred paint: place color C at (X,Y) within
// a chunk's local footprint.
type ImageOperation struct {
	X, Y uint16
	C    color.Color
}

// ImageOperations is a per-chunk deferred paint list with opaque
// dedup, per §3/§4.5. It is built once by a worker and consumed once
// by the driver's Composite call.
type ImageOperations struct {
	MaxX, MaxY int
	bitmap     []bool
	ops        []ImageOperation
}

func NewImageOperations(maxX, maxY int) *ImageOperations {
	return &ImageOperations{
		MaxX:   maxX,
		MaxY:   maxY,
		bitmap: make([]bool, maxX*maxY),
	}
}

// Add inserts one operation. It returns false if the operation was
// rejected: invisible color, out-of-footprint coordinates, or a
// second opaque claim on a pixel already claimed by an earlier opaque
// operation.
func (o *ImageOperations) Add(x, y int, c color.Color) bool {
	if c.IsInvisible() {
		return false
	}
	if x < 0 || y < 0 || x >= o.MaxX || y >= o.MaxY {
		return false
	}
	if c.IsOpaque() {
		idx := y*o.MaxX + x
		if o.bitmap[idx] {
			return false
		}
		o.bitmap[idx] = true
	}
	o.ops = append(o.ops, ImageOperation{X: uint16(x), Y: uint16(y), C: c})
	return true
}

func (o *ImageOperations) Len() int { return len(o.ops) }

// Reversed returns the operations in tail-to-head order. Playback in
// this order is load-bearing (§4.2, §4.5, §9): the bitmap lets the
// first opaque add for a pixel win during collection, and reversing
// at composite time applies that winner before any transparent op
// inserted ahead of it, so those transparent layers (found first by
// a top-down column scan) blend over it. A transparent op inserted
// after the winner is applied before it and is covered by it.
func (o *ImageOperations) Reversed() []ImageOperation {
	out := make([]ImageOperation, len(o.ops))
	n := len(o.ops)
	for i, op := range o.ops {
		out[n-1-i] = op
	}
	return out
}
