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

// Package chunk implements the decode_chunk capability named as
// opaque by §1, and the Chunk Renderer of §3/§4.5 that consumes its
// output. The opaque boundary is Data itself: everything downstream
// of Decode only ever reads block IDs, light levels, position, and
// sign markers from it, never anything specific to the on-disk NBT
// encoding.
package chunk

import (
	"math/bits"
	"os"

	"github.com/Tnze/go-mc/save"

	"github.com/maxsupermanhd/cartograph/cartoerr"
)

// Interner assigns small, stable integer IDs to block-name strings so
// the Chunk Renderer and the Block Model (materials.Table) can share
// one dense index space without either of them knowing the other's
// vocabulary. Grounded on colors.go's use of a raw state ID as a
// table index, generalized to work across multiple chunks instead of
// one process-wide go-mc state table.
type Interner struct {
	ids   map[string]int
	names []string
}

func NewInterner() *Interner {
	return &Interner{ids: map[string]int{}}
}

// ID returns name's stable integer ID, assigning a new one on first
// sight. ID 0 is reserved for air by convention — callers should
// intern "minecraft:air" first if they want that guarantee, though
// Decode does this automatically.
func (in *Interner) ID(name string) int {
	if id, ok := in.ids[name]; ok {
		return id
	}
	id := len(in.names)
	in.ids[name] = id
	in.names = append(in.names, name)
	return id
}

func (in *Interner) Name(id int) string {
	if id < 0 || id >= len(in.names) {
		return ""
	}
	return in.names[id]
}

// LightMarker is the pre-font form of a sign pulled out of chunk
// decoding (§3): text plus a world position, with no font handle
// attached yet. The Marker Overlay component attaches one later.
type LightMarker struct {
	Text string
	X, Y, Z int
}

// Data is the decode_chunk capability's output: a dense block-ID
// array, per-voxel light levels, this chunk's position, and any
// embedded sign markers. MapX/MapY/MapZ are fixed at 16/384/16 for
// the modern world format but are carried explicitly rather than
// hardcoded so a differently-sized world (old format, custom build
// height) still round-trips through the same struct.
type Data struct {
	XPos, ZPos           int32
	MapX, MapY, MapZ     int
	MinY                 int
	Blocks                []int
	SkyLight, BlockLight []uint8
	Signs                []LightMarker
}

func (d *Data) index(x, y, z int) int {
	return (y*d.MapZ+z)*d.MapX + x
}

// Block returns the interned block ID at a chunk-local coordinate,
// with y given in absolute world Y (section-relative math is handled
// internally).
func (d *Data) Block(x, y, z int) int {
	ly := y - d.MinY
	if x < 0 || z < 0 || x >= d.MapX || z >= d.MapZ || ly < 0 || ly >= d.MapY {
		return 0
	}
	return d.Blocks[d.index(x, ly, z)]
}

func (d *Data) SkyLightAt(x, y, z int) uint8 {
	ly := y - d.MinY
	if x < 0 || z < 0 || x >= d.MapX || z >= d.MapZ || ly < 0 || ly >= d.MapY {
		return 0
	}
	return d.SkyLight[d.index(x, ly, z)]
}

func (d *Data) BlockLightAt(x, y, z int) uint8 {
	ly := y - d.MinY
	if x < 0 || z < 0 || x >= d.MapX || z >= d.MapZ || ly < 0 || ly >= d.MapY {
		return 0
	}
	return d.BlockLight[d.index(x, ly, z)]
}

// Decode loads a region-file chunk entry's raw bytes (still carrying
// its 1-byte compression tag) into Data, resolving each section's
// paletted block states into in's integer ID space. Grounded on
// chunkStorage/convert.go's ConvFlexibleNBTtoSave (save.Chunk.Load
// handles its own (de)compression) and render/renderers/palette.go's
// section-palette resolution.
func Decode(raw []byte, in *Interner) (*Data, error) {
	var c save.Chunk
	if err := c.Load(raw); err != nil {
		return nil, &cartoerr.ParseError{Stage: "nbt", Err: err}
	}
	return fromSaveChunk(&c, in)
}

// DecodeFile is Decode reading from a standalone chunk file on disk
// (as World Model scan produces for a directory-of-files world
// layout), rather than a region-file entry.
func DecodeFile(path string, in *Interner) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &cartoerr.IoError{Path: path, Op: "read", Err: err}
	}
	d, err := Decode(raw, in)
	if err != nil {
		if pe, ok := err.(*cartoerr.ParseError); ok {
			pe.Path = path
		}
		return nil, err
	}
	return d, nil
}

const (
	sectionWidth = 16
	sectionsLow  = -4 // modern overworld format: sections span Y -64..319
)

func fromSaveChunk(c *save.Chunk, in *Interner) (*Data, error) {
	airID := in.ID("minecraft:air")
	minY := sectionsLow * sectionWidth
	numSections := len(c.Sections)
	mapY := numSections * sectionWidth
	d := &Data{
		XPos: c.XPos, ZPos: c.ZPos,
		MapX: sectionWidth, MapZ: sectionWidth, MapY: mapY, MinY: minY,
	}
	d.Blocks = make([]int, d.MapX*d.MapY*d.MapZ)
	d.SkyLight = make([]uint8, len(d.Blocks))
	d.BlockLight = make([]uint8, len(d.Blocks))
	for i := range d.Blocks {
		d.Blocks[i] = airID
	}

	for _, s := range c.Sections {
		if len(s.BlockStates.Data) == 0 && len(s.BlockStates.Palette) <= 1 {
			continue
		}
		paletteIndices, ids, err := resolveSectionPalette(&s, in)
		if err != nil || paletteIndices == nil {
			continue
		}
		sectionBaseY := int(s.Y)*sectionWidth - minY
		for ly := 0; ly < sectionWidth; ly++ {
			wy := sectionBaseY + ly
			if wy < 0 || wy >= d.MapY {
				continue
			}
			for lz := 0; lz < sectionWidth; lz++ {
				for lx := 0; lx < sectionWidth; lx++ {
					local := ly*sectionWidth*sectionWidth + lz*sectionWidth + lx
					idx := d.index(lx, wy, lz)
					d.Blocks[idx] = ids[paletteIndices[local]]
				}
			}
		}
		fillLight(d, s.SkyLight, sectionBaseY, &d.SkyLight)
		fillLight(d, s.BlockLight, sectionBaseY, &d.BlockLight)
	}

	for _, be := range c.BlockEntities {
		var bd map[string]any
		_ = be.Unmarshal(&bd)
		if text := signText(bd); text != "" {
			x, y, z := blockEntityPos(bd)
			d.Signs = append(d.Signs, LightMarker{Text: text, X: x, Y: y, Z: z})
		}
	}
	return d, nil
}

// resolveSectionPalette maps a section's local block-state palette
// (names) into in's global IDs and unpacks the bit-packed per-voxel
// palette indices out of the section's long array. Grounded on
// render/renderers/palette.go's prepareSectionBlockstates for the
// name-resolution half; the bit-unpacking half is this package's own
// since go-mc's PaletteContainer operates in go-mc's own state-ID
// space, not the Interner's.
func resolveSectionPalette(s *save.Section, in *Interner) ([]int, []int, error) {
	palette := s.BlockStates.Palette
	if len(palette) == 0 {
		return nil, nil, nil
	}
	ids := make([]int, len(palette))
	for i, p := range palette {
		ids[i] = in.ID(p.Name)
	}
	n := sectionWidth * sectionWidth * sectionWidth
	if len(palette) == 1 {
		single := make([]int, n)
		return single, ids, nil
	}
	indices := unpackPaletteIndices(s.BlockStates.Data, n, len(palette))
	return indices, ids, nil
}

// unpackPaletteIndices decodes n fixed-width palette indices from a
// long array, each entry occupying the minimum bit width that fits
// paletteLen values (never fewer than 4 bits), with entries packed
// low-to-high within each 64-bit word and never spanning two words —
// the scheme every post-1.16 paletted container in the format uses.
// data is []uint64, the type save.PaletteContainer's Data field decodes
// to in go-mc.
func unpackPaletteIndices(data []uint64, n, paletteLen int) []int {
	bitsPerEntry := bits.Len(uint(paletteLen - 1))
	if bitsPerEntry < 4 {
		bitsPerEntry = 4
	}
	perWord := 64 / bitsPerEntry
	mask := uint64(1)<<bitsPerEntry - 1
	out := make([]int, n)
	for i := 0; i < n; i++ {
		word := i / perWord
		if word >= len(data) {
			break
		}
		shift := uint(i%perWord) * uint(bitsPerEntry)
		out[i] = int((uint64(data[word]) >> shift) & mask)
	}
	return out
}

func fillLight(d *Data, nibbles []byte, sectionBaseY int, dst *[]uint8) {
	if len(nibbles) == 0 {
		return
	}
	for ly := 0; ly < sectionWidth; ly++ {
		wy := sectionBaseY + ly
		if wy < 0 || wy >= d.MapY {
			continue
		}
		for lz := 0; lz < sectionWidth; lz++ {
			for lx := 0; lx < sectionWidth; lx++ {
				local := ly*sectionWidth*sectionWidth + lz*sectionWidth + lx
				b := nibbles[local/2]
				var v uint8
				if local%2 == 0 {
					v = b & 0x0F
				} else {
					v = (b >> 4) & 0x0F
				}
				(*dst)[d.index(lx, wy, lz)] = v
			}
		}
	}
}

// blockEntityPos reads a block entity's own x/y/z NBT fields rather
// than assuming the chunk's corner, so every sign in a chunk keeps its
// real position instead of collapsing onto one point.
func blockEntityPos(bd map[string]any) (x, y, z int) {
	return nbtInt(bd["x"]), nbtInt(bd["y"]), nbtInt(bd["z"])
}

func nbtInt(v any) int {
	switch n := v.(type) {
	case int32:
		return int(n)
	case int64:
		return int(n)
	case int:
		return n
	default:
		return 0
	}
}

func signText(bd map[string]any) string {
	for _, key := range []string{"Text1", "Text2", "Text3", "Text4"} {
		if v, ok := bd[key]; ok {
			if s, ok := v.(string); ok && s != "" && s != "{\"text\":\"\"}" {
				return s
			}
		}
	}
	return ""
}
