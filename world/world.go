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

// Package world implements the World Model of §3/§4.6: it enumerates
// a world directory's chunk files, computes the bounding box in chunk
// coordinates, and splits the result into tiles for output.
package world

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Tnze/go-mc/save"
	"github.com/hashicorp/go-multierror"
)

// ChunkDesc identifies one on-disk chunk file and its chunk-space
// position.
type ChunkDesc struct {
	XPos, ZPos int32
	Path       string
}

// Info is the WorldModel's output: a world's chunk-coordinate bounds,
// its chunk list, and — once produced by Split — this tile's identity
// within the full world.
type Info struct {
	MinX, MaxX, MinZ, MaxZ int32
	Chunks                 []ChunkDesc
	ChunkX, ChunkY         int
}

// Range restricts a scan to a chunk-coordinate rectangle, the §6 `-L`
// supplement: north/south/east/west bounds in chunk coordinates.
type Range struct {
	North, South, East, West int32
	Enabled                  bool
}

func (r Range) contains(x, z int32) bool {
	if !r.Enabled {
		return true
	}
	return x >= r.West && x <= r.East && z >= r.North && z <= r.South
}

// ScanOptions controls how Scan walks a world directory.
type ScanOptions struct {
	// Pedantic forces a full chunk decode instead of the fast
	// header-only parse, per §4.6.
	Pedantic bool
	// RequireAll aborts the whole scan on the first unparsable file
	// instead of skipping it, per §4.6's error semantics.
	RequireAll bool
	// RequireLevelDat gates the scan on level.dat's presence; --no-check
	// flips this off.
	RequireLevelDat bool
	Range           Range
	// Extensions restricts which file extensions are treated as chunk
	// files. Defaults to {".mca"} when empty.
	Extensions []string
}

func (o ScanOptions) extensions() []string {
	if len(o.Extensions) > 0 {
		return o.Extensions
	}
	return []string{".mca"}
}

// CheckLevelDat reports whether root/level.dat exists and parses as a
// save.Level, grounded on filesystemChunkStorage/world.go's
// readSaveLevel. Scan calls this itself when RequireLevelDat is set.
func CheckLevelDat(root string) error {
	f, err := os.Open(filepath.Join(root, "level.dat"))
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = save.ReadLevel(f)
	return err
}

// Scan walks root recursively for chunk files, extracting each one's
// (xPos, zPos) and assembling the world's chunk-coordinate bounding
// box. Unparsable files are skipped and their errors aggregated into
// the returned multierror unless opts.RequireAll, in which case the
// first failure aborts the scan immediately.
func Scan(root string, opts ScanOptions) (*Info, error) {
	if opts.RequireLevelDat {
		if err := CheckLevelDat(root); err != nil {
			return nil, fmt.Errorf("world model: level.dat check failed: %w", err)
		}
	}
	info := &Info{
		MinX: int32(1) << 30, MinZ: int32(1) << 30,
		MaxX: -(int32(1) << 30), MaxZ: -(int32(1) << 30),
	}
	var errs *multierror.Error
	exts := opts.extensions()
	walkErr := filepath.Walk(root, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return nil
		}
		if !hasAnyExt(path, exts) {
			return nil
		}
		xPos, zPos, perr := parseChunkFile(path, opts.Pedantic)
		if perr != nil {
			if opts.RequireAll {
				return fmt.Errorf("%s: %w", path, perr)
			}
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", path, perr))
			return nil
		}
		if !opts.Range.contains(xPos, zPos) {
			return nil
		}
		info.Chunks = append(info.Chunks, ChunkDesc{XPos: xPos, ZPos: zPos, Path: path})
		if xPos < info.MinX {
			info.MinX = xPos
		}
		if xPos > info.MaxX {
			info.MaxX = xPos
		}
		if zPos < info.MinZ {
			info.MinZ = zPos
		}
		if zPos > info.MaxZ {
			info.MaxZ = zPos
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	if len(info.Chunks) == 0 {
		info.MinX, info.MaxX, info.MinZ, info.MaxZ = 0, 0, 0, 0
	}
	sort.Slice(info.Chunks, func(i, j int) bool {
		if info.Chunks[i].ZPos != info.Chunks[j].ZPos {
			return info.Chunks[i].ZPos < info.Chunks[j].ZPos
		}
		return info.Chunks[i].XPos < info.Chunks[j].XPos
	})
	if errs != nil {
		return info, errs
	}
	return info, nil
}

func hasAnyExt(path string, exts []string) bool {
	for _, e := range exts {
		if strings.EqualFold(filepath.Ext(path), e) {
			return true
		}
	}
	return false
}

func parseChunkFile(path string, pedantic bool) (int32, int32, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	if pedantic {
		var c save.Chunk
		if err := c.Load(mustReadAll(f)); err != nil {
			return 0, 0, err
		}
		return c.XPos, c.ZPos, nil
	}

	raw, err := io.ReadAll(f)
	if err != nil {
		return 0, 0, err
	}
	payload, err := maybeDecompress(raw)
	if err != nil {
		return 0, 0, err
	}
	return ScanHeader(payload)
}

func mustReadAll(r io.Reader) []byte {
	b, _ := io.ReadAll(r)
	return b
}

// maybeDecompress strips the region-file compression-type byte and
// gunzips/inflates the payload when present, matching the format
// chunkStorage.ConvFlexibleNBTtoSave expects.
func maybeDecompress(raw []byte) ([]byte, error) {
	if len(raw) == 0 {
		return raw, nil
	}
	switch raw[0] {
	case 1: // gzip
		raw = raw[1:]
	case 2: // zlib
		zr, err := zlib.NewReader(bytes.NewReader(raw[1:]))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		return io.ReadAll(zr)
	case 3: // uncompressed
		return raw[1:], nil
	}
	if raw[0] == 0x1f && len(raw) > 1 && raw[1] == 0x8b {
		zr, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		return io.ReadAll(zr)
	}
	return raw, nil
}
