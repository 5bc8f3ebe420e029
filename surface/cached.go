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
	"io"
	"os"

	"github.com/maxsupermanhd/cartograph/cartoerr"
	"github.com/maxsupermanhd/cartograph/color"
)

type cacheEntry struct {
	x, y int
	c    color.Color
	set  bool
}

// CachedImage backs pixel storage with a temp file of width*height*4
// bytes plus a fixed-size open-addressing pixel cache (§4.2, §9): one
// entry per slot, direct-mapped by (x + y*width) mod cap. It is not a
// general hash table — a collision evicts the occupant rather than
// growing a bucket, which is what keeps its memory footprint at
// cap*sizeof(cacheEntry) regardless of image size.
type CachedImage struct {
	w, h    int
	path    string
	file    *os.File
	cap     int
	entries []cacheEntry
}

// NewCachedImage creates (or truncates) the backing temp file at path
// and allocates a pixel cache of cap entries.
func NewCachedImage(path string, w, h, cap int) (*CachedImage, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, &cartoerr.IoError{Path: path, Op: "create", Err: err}
	}
	if err := f.Truncate(int64(w) * int64(h) * 4); err != nil {
		f.Close()
		os.Remove(path)
		return nil, &cartoerr.IoError{Path: path, Op: "truncate", Err: err}
	}
	if cap <= 0 {
		cap = 1
	}
	return &CachedImage{
		w: w, h: h,
		path:    path,
		file:    f,
		cap:     cap,
		entries: make([]cacheEntry, cap),
	}, nil
}

func (c *CachedImage) Width() int  { return c.w }
func (c *CachedImage) Height() int { return c.h }

func (c *CachedImage) slot(x, y int) int {
	return (x + y*c.w) % c.cap
}

func (c *CachedImage) byteOffset(x, y int) int64 {
	return (int64(y)*int64(c.w) + int64(x)) * 4
}

func (c *CachedImage) readPixel(x, y int) (color.Color, error) {
	var buf [4]byte
	if _, err := c.file.ReadAt(buf[:], c.byteOffset(x, y)); err != nil {
		if err == io.EOF {
			return color.Color{}, nil
		}
		return color.Color{}, &cartoerr.IoError{Path: c.path, Op: "read", Err: err}
	}
	return color.Read(buf[:]), nil
}

func (c *CachedImage) writePixel(x, y int, col color.Color) error {
	var buf [4]byte
	col.Write(buf[:])
	if _, err := c.file.WriteAt(buf[:], c.byteOffset(x, y)); err != nil {
		return &cartoerr.IoError{Path: c.path, Op: "write", Err: err}
	}
	return nil
}

// flushSlot writes a resident, dirty slot back to disk with a
// seek+write and marks it empty. A no-op on an already-empty slot.
func (c *CachedImage) flushSlot(i int) error {
	e := &c.entries[i]
	if !e.set {
		return nil
	}
	if err := c.writePixel(e.x, e.y, e.c); err != nil {
		return err
	}
	e.set = false
	return nil
}

// Get bypasses the cache and reads directly from disk, per §4.2.
func (c *CachedImage) Get(x, y int) color.Color {
	col, _ := c.readPixel(x, y)
	return col
}

// Set bypasses the cache and writes directly to disk, per §4.2. A
// resident cache entry for this pixel, if any, is dropped so a later
// Blend doesn't resurrect the value Set just overwrote.
func (c *CachedImage) Set(x, y int, col color.Color) {
	i := c.slot(x, y)
	e := &c.entries[i]
	if e.set && e.x == x && e.y == y {
		e.set = false
	}
	_ = c.writePixel(x, y, col)
}

// Blend discards an invisible src, then resolves the direct-mapped
// slot for (x,y): a hit on the same coordinates blends in place; a
// miss first evicts any different occupant with a seek+write, loads
// the current on-disk value into the slot, and then blends onto that
// — so cache residency never changes the composited result, only
// when the write-back to disk happens.
func (c *CachedImage) Blend(x, y int, col color.Color) {
	if col.IsInvisible() {
		return
	}
	i := c.slot(x, y)
	e := &c.entries[i]
	if !(e.set && e.x == x && e.y == y) {
		if e.set {
			_ = c.flushSlot(i)
		}
		existing, _ := c.readPixel(x, y)
		e.x, e.y, e.c, e.set = x, y, existing, true
	}
	e.c = e.c.Blend(col)
}

func (c *CachedImage) GetLine(y, offset, width int) ([]color.Color, error) {
	if width+offset > c.w {
		return nil, fmt.Errorf("surface: line of width %d at offset %d exceeds width %d", width, offset, c.w)
	}
	for i := range c.entries {
		if c.entries[i].set && c.entries[i].y == y {
			if err := c.flushSlot(i); err != nil {
				return nil, err
			}
		}
	}
	buf := make([]byte, width*4)
	if _, err := c.file.ReadAt(buf, c.byteOffset(offset, y)); err != nil && err != io.EOF {
		return nil, &cartoerr.IoError{Path: c.path, Op: "read", Err: err}
	}
	out := make([]color.Color, width)
	for i := range out {
		out[i] = color.Read(buf[i*4 : i*4+4])
	}
	return out, nil
}

func (c *CachedImage) Composite(dx, dy int, ops *ImageOperations) {
	for _, op := range ops.Reversed() {
		x, y := dx+int(op.X), dy+int(op.Y)
		if x < 0 || y < 0 || x >= c.w || y >= c.h {
			continue
		}
		c.Blend(x, y, op.C)
	}
}

func (c *CachedImage) CompositeSurface(dx, dy int, src Surface) {
	for y := 0; y < src.Height(); y++ {
		line, err := src.GetLine(y, 0, src.Width())
		if err != nil {
			continue
		}
		ty := dy + y
		if ty < 0 || ty >= c.h {
			continue
		}
		for x, col := range line {
			tx := dx + x
			if tx < 0 || tx >= c.w {
				continue
			}
			c.Blend(tx, ty, col)
		}
	}
}

func (c *CachedImage) Fill(col color.Color) {
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			c.Set(x, y, col)
		}
	}
}

// Flush writes every resident dirty slot back to disk.
func (c *CachedImage) Flush() error {
	for i := range c.entries {
		if err := c.flushSlot(i); err != nil {
			return err
		}
	}
	return nil
}

func (c *CachedImage) SavePNG(path, title string, progress ProgressFunc) error {
	if err := c.Flush(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return &cartoerr.IoError{Path: path, Op: "create", Err: err}
	}
	defer f.Close()
	if err := WritePNG(f, c.w, c.h, title, func(y int) ([]color.Color, error) {
		return c.GetLine(y, 0, c.w)
	}, progress); err != nil {
		return &cartoerr.IoError{Path: path, Op: "encode", Err: err}
	}
	return nil
}

// Close flushes, closes, and deletes the backing temp file, per §5's
// resource discipline: the file is scoped to this surface's lifetime
// and must not outlive it, on either a normal or an error exit.
func (c *CachedImage) Close() error {
	flushErr := c.Flush()
	closeErr := c.file.Close()
	removeErr := os.Remove(c.path)
	if flushErr != nil {
		return flushErr
	}
	if closeErr != nil {
		return &cartoerr.IoError{Path: c.path, Op: "close", Err: closeErr}
	}
	if removeErr != nil && !os.IsNotExist(removeErr) {
		return &cartoerr.IoError{Path: c.path, Op: "remove", Err: removeErr}
	}
	return nil
}
