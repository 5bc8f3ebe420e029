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
	"bufio"
	"compress/zlib"
	"encoding/binary"
	"hash/crc32"
	"io"

	"github.com/maxsupermanhd/cartograph/color"
)

// WritePNG encodes a non-interlaced 8-bit RGBA PNG directly, rather
// than through the standard library's image/png.Encode: §4.2 requires
// a per-row progress tick and an optional "Title" text chunk, neither
// of which image/png's Encoder exposes. It hand-walks the binary
// format with stdlib primitives (compress/zlib, hash/crc32,
// encoding/binary) rather than inventing or importing a new
// abstraction for it.
//
// getLine(y) must return exactly width colors for 0 <= y < height.
func WritePNG(w io.Writer, width, height int, title string, getLine func(y int) ([]color.Color, error), progress ProgressFunc) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(pngSignature); err != nil {
		return err
	}
	var ihdr [13]byte
	binary.BigEndian.PutUint32(ihdr[0:4], uint32(width))
	binary.BigEndian.PutUint32(ihdr[4:8], uint32(height))
	ihdr[8] = 8 // bit depth
	ihdr[9] = 6 // color type: truecolor with alpha
	ihdr[10] = 0
	ihdr[11] = 0
	ihdr[12] = 0 // interlace method: none
	if err := writeChunk(bw, "IHDR", ihdr[:]); err != nil {
		return err
	}
	if title != "" {
		data := append([]byte("Title\x00"), []byte(title)...)
		if err := writeChunk(bw, "tEXt", data); err != nil {
			return err
		}
	}
	icw := newIdatChunkWriter(bw)
	zw := zlib.NewWriter(icw)
	row := make([]byte, 1+width*4)
	for y := 0; y < height; y++ {
		line, err := getLine(y)
		if err != nil {
			return err
		}
		row[0] = 0 // filter type: None
		for x, c := range line {
			c.Write(row[1+x*4 : 1+x*4+4])
		}
		if _, err := zw.Write(row); err != nil {
			return err
		}
		if progress != nil {
			progress(y+1, height)
		}
	}
	if err := zw.Close(); err != nil {
		return err
	}
	if err := icw.Close(); err != nil {
		return err
	}
	if err := writeChunk(bw, "IEND", nil); err != nil {
		return err
	}
	if progress != nil {
		progress(height, height)
	}
	return bw.Flush()
}

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func writeChunk(w io.Writer, typ string, data []byte) error {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(data)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	crc := crc32.NewIEEE()
	_, _ = crc.Write([]byte(typ))
	_, _ = crc.Write(data)
	if _, err := io.WriteString(w, typ); err != nil {
		return err
	}
	if len(data) > 0 {
		if _, err := w.Write(data); err != nil {
			return err
		}
	}
	var crcBuf [4]byte
	binary.BigEndian.PutUint32(crcBuf[:], crc.Sum32())
	_, err := w.Write(crcBuf[:])
	return err
}

// idatChunkWriter buffers compressed bytes up to a fixed size and
// flushes each full buffer as one IDAT chunk, so encoding a surface
// far larger than memory never holds the whole compressed stream at
// once — the same bound CachedImage gives pixel storage.
type idatChunkWriter struct {
	w   io.Writer
	buf []byte
}

func newIdatChunkWriter(w io.Writer) *idatChunkWriter {
	return &idatChunkWriter{w: w, buf: make([]byte, 0, 32*1024)}
}

func (c *idatChunkWriter) Write(p []byte) (int, error) {
	total := len(p)
	for len(p) > 0 {
		free := cap(c.buf) - len(c.buf)
		if free == 0 {
			if err := c.flush(); err != nil {
				return total - len(p), err
			}
			free = cap(c.buf)
		}
		n := free
		if n > len(p) {
			n = len(p)
		}
		c.buf = append(c.buf, p[:n]...)
		p = p[n:]
	}
	return total, nil
}

func (c *idatChunkWriter) flush() error {
	if len(c.buf) == 0 {
		return nil
	}
	err := writeChunk(c.w, "IDAT", c.buf)
	c.buf = c.buf[:0]
	return err
}

func (c *idatChunkWriter) Close() error {
	return c.flush()
}
