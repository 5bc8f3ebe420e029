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

// Package compositor implements the Compositor Driver of §4.8: sizes
// the output canvas from the World Model and the chosen projection,
// picks MemoryImage or CachedImage, drives chunk decode+render through
// the worker pool, composites each result at its projected offset,
// accumulates sign markers, and finally writes PNG output (tiled or
// not). Grounded on the dispatcher/driver split in
// render/dispatchers/priorityPipelineRender.go, generalized from an
// HTTP-triggered single-chunk render to a whole-world batch driver.
package compositor

import (
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/maxsupermanhd/cartograph/chunk"
	"github.com/maxsupermanhd/cartograph/materials"
	"github.com/maxsupermanhd/cartograph/progress"
	"github.com/maxsupermanhd/cartograph/projection"
	"github.com/maxsupermanhd/cartograph/surface"
	"github.com/maxsupermanhd/cartograph/workerpool"
	"github.com/maxsupermanhd/cartograph/world"
)

// Settings configures one compositor run. MemoryLimitBytes decides
// MemoryImage vs CachedImage; CachePath/CacheEntries only matter in
// the CachedImage branch.
type Settings struct {
	Render           chunk.Settings
	MemoryLimitBytes int64
	CachePath        string
	CacheEntries     int
	ThreadCount      int
	// PixelSplit, if > 0, splits output into that many pixel-square
	// tiles instead of one whole-canvas PNG, per §4.8.
	PixelSplit int
	OutputPath string
	Title      string
	// RequireAll aborts the whole run on the first chunk decode/render
	// failure instead of logging and skipping it, per §7's --require-all.
	RequireAll bool
	// Overlay, if non-nil, runs against the composited surface after
	// every chunk has been placed but before PNG output, so the
	// Marker Overlay draws onto the finished map rather than onto
	// individual chunk tiles. Kept as a callback (rather than this
	// package importing the markers package directly) so the
	// compositor has no dependency on how a marker gets drawn.
	Overlay func(surf surface.Surface, signs []chunk.LightMarker)
}

// Result is what the driver gets back after rendering every chunk and
// writing output.
type Result struct {
	Signs []chunk.LightMarker
	Files []string
}

type decodeResult struct {
	data *chunk.Data
	ops  *surface.ImageOperations
	desc world.ChunkDesc
}

// Run drives the full render: decode+render every chunk in info
// through a worker pool, composite results onto a sized Surface, and
// save PNG output (split into tiles when PixelSplit > 0).
func Run(info *world.Info, mat *materials.Table, s Settings, prog *progress.Reporter) (*Result, error) {
	cube := canvasCube(info, s.Render.Mode, s.Render.Top-s.Render.Bottom+1)
	w, h := cube.Dimensions()

	surf, cleanup, err := chooseSurface(w, h, s)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	in := chunk.NewInterner()
	total := len(info.Chunks)

	pool := workerpool.New(s.ThreadCount, func(desc world.ChunkDesc) (decodeResult, error) {
		d, err := chunk.DecodeFile(desc.Path, in)
		if err != nil {
			return decodeResult{}, err
		}
		ops := chunk.Render(d, mat, s.Render)
		return decodeResult{data: d, ops: ops, desc: desc}, nil
	})

	go func() {
		for i, desc := range info.Chunks {
			if !pool.Submit(i, desc) {
				return
			}
		}
		pool.Close()
	}()

	var signs []chunk.LightMarker
	var fatal error
	done := 0
	for r := range pool.Results {
		done++
		if prog != nil {
			prog.ParseProgress(percent(done, total))
		}
		if r.Err != nil {
			log.Printf("compositor: chunk decode/render failed: %v", r.Err)
			if prog != nil {
				prog.Error(0)
			}
			if s.RequireAll {
				fatal = r.Err
				pool.Cancel()
				break
			}
			continue
		}
		ox, oy, ok := chunkOffset(cube, info, r.Value.desc, s.Render.Rotation)
		if !ok {
			continue
		}
		surf.Composite(ox, oy, r.Value.ops)
		signs = append(signs, r.Value.data.Signs...)
		if prog != nil {
			prog.CompositeProgress(percent(done, total))
		}
	}

	if fatal != nil {
		return nil, fatal
	}

	if s.Overlay != nil {
		s.Overlay(surf, signs)
	}

	files, err := save(surf, s, prog)
	if err != nil {
		return nil, err
	}
	return &Result{Signs: signs, Files: files}, nil
}

// canvasCube sizes the whole world's render box: BX/BZ span the
// world's chunk-coordinate bounding box scaled to blocks-per-chunk.
// BY must equal the per-chunk render's own Y span so the offset
// arithmetic below uses the same Oblique/ObliqueAngle/Isometric
// formulas the Chunk Renderer used when it projected each voxel.
func canvasCube(info *world.Info, mode projection.Mode, ySpan int) projection.Cube {
	const chunkBlocks = 16
	bx := int(info.MaxX-info.MinX+1) * chunkBlocks
	bz := int(info.MaxZ-info.MinZ+1) * chunkBlocks
	return projection.Cube{BX: bx, BY: ySpan, BZ: bz, Mode: mode}
}

// chunkOffset projects a chunk's position (relative to the world's
// minimum corner) into the canvas via the same Cube used to size it,
// matching the Chunk Renderer's own per-voxel projection arithmetic
// exactly so a chunk composited at this offset lines up seamlessly
// with its neighbors.
func chunkOffset(cube projection.Cube, info *world.Info, desc world.ChunkDesc, rot projection.Rotation) (int, int, bool) {
	const chunkBlocks = 16
	relX := int(desc.XPos-info.MinX) * chunkBlocks
	relZ := int(desc.ZPos-info.MinZ) * chunkBlocks
	ox, oy, ok := cube.Project(projection.Rotate(projection.Point3{X: relX, Y: 0, Z: relZ}, rot))
	if !ok {
		return 0, 0, false
	}
	// The chunk's own ops already carry its footprint cube's projection
	// of the local origin; subtract it so it isn't counted twice.
	local := projection.Cube{BX: chunkBlocks, BY: cube.BY, BZ: chunkBlocks, Mode: cube.Mode}
	lx, ly, _ := local.Project(projection.Point3{})
	return ox - lx, oy - ly, true
}

func chooseSurface(w, h int, s Settings) (surface.Surface, func(), error) {
	needed := int64(w) * int64(h) * 4
	if s.MemoryLimitBytes <= 0 || needed <= s.MemoryLimitBytes {
		return surface.NewMemoryImage(w, h), func() {}, nil
	}
	cacheEntries := s.CacheEntries
	if cacheEntries <= 0 {
		cacheEntries = 4096
	}
	cachePath := s.CachePath
	if cachePath == "" {
		cachePath = filepath.Join(".", "cartograph.cache")
	}
	ci, err := surface.NewCachedImage(cachePath, w, h, cacheEntries)
	if err != nil {
		return nil, nil, err
	}
	return ci, func() {
		if err := ci.Close(); err != nil {
			log.Printf("compositor: closing cached surface: %v", err)
		}
	}, nil
}

// save writes surf to disk, splitting into PixelSplit-sized tiles
// when requested, substituting %x/%z in the output path for each
// tile's own coordinates, per §4.8.
func save(surf surface.Surface, s Settings, prog *progress.Reporter) ([]string, error) {
	if s.PixelSplit <= 0 {
		if err := surf.SavePNG(s.OutputPath, s.Title, tileProgress(prog)); err != nil {
			return nil, err
		}
		return []string{s.OutputPath}, nil
	}

	var files []string
	w, h := surf.Width(), surf.Height()
	for oy := 0; oy < h; oy += s.PixelSplit {
		for ox := 0; ox < w; ox += s.PixelSplit {
			tw, th := s.PixelSplit, s.PixelSplit
			if ox+tw > w {
				tw = w - ox
			}
			if oy+th > h {
				th = h - oy
			}
			tile := surface.NewVirtualImage(surf, ox, oy, tw, th)
			path := substituteTileCoords(s.OutputPath, ox/s.PixelSplit, oy/s.PixelSplit)
			if err := tile.SavePNG(path, s.Title, tileProgress(prog)); err != nil {
				return nil, err
			}
			files = append(files, path)
		}
	}
	return files, nil
}

func substituteTileCoords(path string, tx, ty int) string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	if strings.Contains(base, "%x") || strings.Contains(base, "%z") {
		base = strings.ReplaceAll(base, "%x", strconv.Itoa(tx))
		base = strings.ReplaceAll(base, "%z", strconv.Itoa(ty))
		return base + ext
	}
	return fmt.Sprintf("%s.%d.%d%s", base, tx, ty, ext)
}

func tileProgress(prog *progress.Reporter) surface.ProgressFunc {
	if prog == nil {
		return nil
	}
	return func(rowsWritten, totalRows int) {
		prog.ImageWriteProgress(percent(rowsWritten, totalRows))
	}
}

func percent(part, whole int) byte {
	if whole <= 0 {
		return 0
	}
	return byte((part * 0xff) / whole)
}
