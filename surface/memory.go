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

// MemoryImage owns a contiguous row-major width*height Color array.
type MemoryImage struct {
	w, h int
	pix  []color.Color
}

func NewMemoryImage(w, h int) *MemoryImage {
	return &MemoryImage{w: w, h: h, pix: make([]color.Color, w*h)}
}

func (m *MemoryImage) Width() int  { return m.w }
func (m *MemoryImage) Height() int { return m.h }

func (m *MemoryImage) Get(x, y int) color.Color { return m.pix[y*m.w+x] }

func (m *MemoryImage) Set(x, y int, c color.Color) { m.pix[y*m.w+x] = c }

func (m *MemoryImage) Blend(x, y int, c color.Color) {
	i := y*m.w + x
	m.pix[i] = m.pix[i].Blend(c)
}

func (m *MemoryImage) GetLine(y, offset, width int) ([]color.Color, error) {
	if width+offset > m.w {
		return nil, fmt.Errorf("surface: line of width %d at offset %d exceeds width %d", width, offset, m.w)
	}
	start := y*m.w + offset
	out := make([]color.Color, width)
	copy(out, m.pix[start:start+width])
	return out, nil
}

func (m *MemoryImage) Composite(dx, dy int, ops *ImageOperations) {
	for _, op := range ops.Reversed() {
		x, y := dx+int(op.X), dy+int(op.Y)
		if x < 0 || y < 0 || x >= m.w || y >= m.h {
			continue
		}
		m.Blend(x, y, op.C)
	}
}

func (m *MemoryImage) CompositeSurface(dx, dy int, src Surface) {
	for y := 0; y < src.Height(); y++ {
		line, err := src.GetLine(y, 0, src.Width())
		if err != nil {
			continue
		}
		ty := dy + y
		if ty < 0 || ty >= m.h {
			continue
		}
		for x, c := range line {
			tx := dx + x
			if tx < 0 || tx >= m.w {
				continue
			}
			m.Blend(tx, ty, c)
		}
	}
}

func (m *MemoryImage) Fill(c color.Color) {
	for i := range m.pix {
		m.pix[i] = c
	}
}

func (m *MemoryImage) SavePNG(path, title string, progress ProgressFunc) error {
	f, err := os.Create(path)
	if err != nil {
		return &cartoerr.IoError{Path: path, Op: "create", Err: err}
	}
	defer f.Close()
	if err := WritePNG(f, m.w, m.h, title, func(y int) ([]color.Color, error) {
		return m.GetLine(y, 0, m.w)
	}, progress); err != nil {
		return &cartoerr.IoError{Path: path, Op: "encode", Err: err}
	}
	return nil
}
