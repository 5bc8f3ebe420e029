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

package main

import (
	"log"
	"log/slog"
	"os"
	"runtime"
	"strings"

	humanize "github.com/dustin/go-humanize"

	"github.com/maxsupermanhd/cartograph/cartolog"
	"github.com/maxsupermanhd/cartograph/chunk"
	"github.com/maxsupermanhd/cartograph/compositor"
	"github.com/maxsupermanhd/cartograph/markers"
	"github.com/maxsupermanhd/cartograph/materials"
	"github.com/maxsupermanhd/cartograph/progress"
	"github.com/maxsupermanhd/cartograph/projection"
	"github.com/maxsupermanhd/cartograph/settings"
	"github.com/maxsupermanhd/cartograph/surface"
	"github.com/maxsupermanhd/cartograph/world"
)

func main() {
	os.Exit(run())
}

func run() int {
	s, err := settings.Parse(os.Args[1:])
	if err != nil {
		log.Println(err)
		return 1
	}

	logger, lj := cartolog.New(cartolog.Options{FilePath: s.LogFile, Debug: s.Debug})
	if lj != nil {
		defer lj.Close()
		log.SetOutput(lj)
	}
	if s.Silent {
		log.SetOutput(os.Stderr)
		log.SetFlags(0)
	}
	logger.Debug("starting render", "world", s.WorldPath, "mode", s.Mode)

	var prog *progress.Reporter
	if s.BinaryProgress {
		prog = progress.New(os.Stdout)
	}

	tuning, err := settings.LoadTuning(s.TuningFile)
	if err != nil {
		log.Println(err)
		return 1
	}

	threads := s.Threads
	if threads <= 0 {
		threads = tuning.Conf.GetDInt(runtime.GOMAXPROCS(0), "rendererThreadCount")
	}

	info, err := world.Scan(s.WorldPath, world.ScanOptions{
		RequireLevelDat: !s.NoCheck,
		RequireAll:      s.RequireAll,
		Range: world.Range{
			North: s.RangeArg.North, South: s.RangeArg.South,
			East: s.RangeArg.East, West: s.RangeArg.West,
			Enabled: s.RangeArg.Enabled,
		},
	})
	if err != nil {
		log.Println(err)
		if info == nil {
			return 1
		}
	}
	if prog != nil {
		prog.ParseProgress(0xff)
	}

	mat := buildMaterials(s)

	renderSettings := chunk.Settings{
		Mode: s.Mode, Rotation: s.Rotation,
		Top: s.Top, Bottom: s.Bottom,
		Night: s.Night, DayFactor: 1,
		Heightmap: s.Heightmap, Cave: s.Cave, Striped: s.Striped,
		Excluded: excludedSet(s.ExcludeIDs),
	}

	overlay, err := buildOverlay(s, info, renderSettings)
	if err != nil {
		log.Println(err)
		return 1
	}

	result, err := compositor.Run(info, mat, compositor.Settings{
		Render:           renderSettings,
		MemoryLimitBytes: s.MemoryLimitMB * 1024 * 1024,
		CachePath:        s.CachePath,
		CacheEntries:     tuning.Conf.GetDInt(4096, "cacheEntries"),
		ThreadCount:      threads,
		PixelSplit:       s.PixelSplit,
		OutputPath:       s.OutputPath,
		Title:            "cartograph",
		RequireAll:       s.RequireAll,
		Overlay:          overlayFunc(s, overlay),
	}, prog)
	if err != nil {
		log.Println(err)
		if prog != nil {
			prog.Error(1)
		}
		return 1
	}

	if s.WriteMarkersTo != "" {
		if err := overlay.Export(s.WriteMarkersTo, collectMarkers(s, result.Signs)); err != nil {
			log.Println(err)
			return 1
		}
	}

	if !s.Silent {
		logSummary(logger, info, result)
	}

	if prog != nil {
		prog.Done(0)
	}
	return 0
}

// logSummary reports a human-readable completion line: chunk count and
// total bytes written. It is logged whether or not -x is set, and
// skipped under -s.
func logSummary(logger *slog.Logger, info *world.Info, result *compositor.Result) {
	var total int64
	for _, f := range result.Files {
		if fi, err := os.Stat(f); err == nil {
			total += fi.Size()
		}
	}
	logger.Info("render complete",
		"chunks", humanize.Comma(int64(len(info.Chunks))),
		"files", len(result.Files),
		"bytes", humanize.Bytes(uint64(total)))
}

func buildMaterials(s *settings.Settings) *materials.Table {
	mat := materials.NewTable(4096)
	if s.PaletteLoadPath != "" {
		if err := mat.Load(s.PaletteLoadPath); err != nil {
			log.Printf("could not load palette %s: %v", s.PaletteLoadPath, err)
		}
	}
	if s.HideAll {
		mat.HideAll()
		for _, id := range s.IncludeIDs {
			mat.Include(id)
		}
	}
	for id, c := range s.BlockColorOverrides {
		mat.Recolor(id, c, c)
	}
	if s.PaletteSavePath != "" {
		if err := mat.Save(s.PaletteSavePath); err != nil {
			log.Printf("could not save palette %s: %v", s.PaletteSavePath, err)
		}
	}
	return mat
}

func excludedSet(ids []int) map[int]bool {
	m := map[int]bool{}
	for _, id := range ids {
		m[id] = true
	}
	return m
}

// buildOverlay sizes a marker Overlay to the same canvas the
// compositor produces and, unless markers are being exported instead
// of drawn, loads the configured font face.
func buildOverlay(s *settings.Settings, info *world.Info, rs chunk.Settings) (*markers.Overlay, error) {
	const chunkBlocks = 16
	cube := projection.Cube{
		BX:   int(info.MaxX-info.MinX+1) * chunkBlocks,
		BY:   rs.Top - rs.Bottom + 1,
		BZ:   int(info.MaxZ-info.MinZ+1) * chunkBlocks,
		Mode: rs.Mode,
	}
	overlay := &markers.Overlay{Cube: cube, Rotation: rs.Rotation}
	if s.WriteMarkersTo == "" && s.TTFPath != "" {
		face, err := markers.LoadFace(s.TTFPath, s.TTFSize)
		if err != nil {
			return nil, err
		}
		overlay.Face = face
	}
	return overlay, nil
}

// overlayFunc builds the compositor.Settings.Overlay callback: it
// draws markers onto the finished surface unless --write-markers was
// given, in which case the surface is left untouched and main writes
// a JSON export separately.
func overlayFunc(s *settings.Settings, overlay *markers.Overlay) func(surface.Surface, []chunk.LightMarker) {
	if s.WriteMarkersTo != "" {
		return nil
	}
	return func(surf surface.Surface, signs []chunk.LightMarker) {
		overlay.Draw(surf, collectMarkers(s, signs))
	}
}

func collectMarkers(s *settings.Settings, signs []chunk.LightMarker) []markers.Marker {
	var list []markers.Marker
	if s.ShowSigns {
		for _, m := range signs {
			if s.SignsPrefix != "" && !strings.HasPrefix(m.Text, s.SignsPrefix) {
				continue
			}
			list = append(list, markers.Marker{
				Text: m.Text, Kind: markers.Sign,
				Position: projection.Point3{X: m.X, Y: m.Y, Z: m.Z},
			})
		}
	}
	return list
}
