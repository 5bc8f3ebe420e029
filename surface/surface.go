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

// Package surface implements the ImageSurface capability set of §3/§4.2
// as three interchangeable concrete types — MemoryImage, CachedImage,
// VirtualImage — rather than a class hierarchy. Dispatch is by Go
// interface, not by a tag or a type switch: every caller in this repo
// (chunk renderer output aside, which produces ImageOperations, not a
// Surface) talks to the Surface interface only.
package surface

import "github.com/maxsupermanhd/cartograph/color"

// ProgressFunc is called after each PNG row is encoded, and once more
// with rowsWritten == totalRows when encoding finishes.
type ProgressFunc func(rowsWritten, totalRows int)

// Surface is the capability set every image store implements.
type Surface interface {
	Width() int
	Height() int
	Get(x, y int) color.Color
	Set(x, y int, c color.Color)
	Blend(x, y int, c color.Color)
	// GetLine returns width colors from row y starting at offset.
	// The bound check is width+offset <= Width().
	GetLine(y, offset, width int) ([]color.Color, error)
	// Composite plays ops back (see ImageOperations.Reversed) onto
	// this surface, translated by (dx,dy). Ops whose translated
	// coordinate falls outside the surface are silently skipped.
	Composite(dx, dy int, ops *ImageOperations)
	// CompositeSurface blends every pixel of src onto this surface,
	// translated by (dx,dy).
	CompositeSurface(dx, dy int, src Surface)
	Fill(c color.Color)
	// SavePNG writes the full surface as an 8-bit RGBA non-interlaced
	// PNG. title, if non-empty, is embedded as a "Title" tEXt chunk.
	SavePNG(path, title string, progress ProgressFunc) error
}
