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

import (
	"fmt"
	"os"

	"github.com/maxsupermanhd/cartograph/cartoerr"
	"github.com/maxsupermanhd/cartograph/color"
)

// VirtualImage is a windowed view onto another Surface. Every
// operation translates coordinates by (XOff,YOff) and forwards to
// Base; it owns no pixels of its own. Used to carve the final render
// into fixed-pixel-size output tiles (§4.2, §4.8).
type VirtualImage struct {
	Base       Surface
	XOff, YOff int
	W, H       int
}

func NewVirtualImage(base Surface, xoff, yoff, w, h int) *VirtualImage {
	return &VirtualImage{Base: base, XOff: xoff, YOff: yoff, W: w, H: h}
}

func (v *VirtualImage) Width() int  { return v.W }
func (v *VirtualImage) Height() int { return v.H }

func (v *VirtualImage) Get(x, y int) color.Color {
	return v.Base.Get(v.XOff+x, v.YOff+y)
}

func (v *VirtualImage) Set(x, y int, c color.Color) {
	v.Base.Set(v.XOff+x, v.YOff+y, c)
}

func (v *VirtualImage) Blend(x, y int, c color.Color) {
	v.Base.Blend(v.XOff+x, v.YOff+y, c)
}

func (v *VirtualImage) GetLine(y, offset, width int) ([]color.Color, error) {
	if width+offset > v.W {
		return nil, fmt.Errorf("surface: line of width %d at offset %d exceeds width %d", width, offset, v.W)
	}
	return v.Base.GetLine(v.YOff+y, v.XOff+offset, width)
}

func (v *VirtualImage) Composite(dx, dy int, ops *ImageOperations) {
	for _, op := range ops.Reversed() {
		x, y := dx+int(op.X), dy+int(op.Y)
		if x < 0 || y < 0 || x >= v.W || y >= v.H {
			continue
		}
		v.Blend(x, y, op.C)
	}
}

func (v *VirtualImage) CompositeSurface(dx, dy int, src Surface) {
	for y := 0; y < src.Height(); y++ {
		line, err := src.GetLine(y, 0, src.Width())
		if err != nil {
			continue
		}
		ty := dy + y
		if ty < 0 || ty >= v.H {
			continue
		}
		for x, c := range line {
			tx := dx + x
			if tx < 0 || tx >= v.W {
				continue
			}
			v.Blend(tx, ty, c)
		}
	}
}

func (v *VirtualImage) Fill(c color.Color) {
	for y := 0; y < v.H; y++ {
		for x := 0; x < v.W; x++ {
			v.Set(x, y, c)
		}
	}
}

func (v *VirtualImage) SavePNG(path, title string, progress ProgressFunc) error {
	f, err := os.Create(path)
	if err != nil {
		return &cartoerr.IoError{Path: path, Op: "create", Err: err}
	}
	defer f.Close()
	if err := WritePNG(f, v.W, v.H, title, func(y int) ([]color.Color, error) {
		return v.GetLine(y, 0, v.W)
	}, progress); err != nil {
		return &cartoerr.IoError{Path: path, Op: "encode", Err: err}
	}
	return nil
}
