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

// Package settings parses the §6 CLI surface with the standard flag
// package (grounded on cmd/auth/main.go and cmd/regenHeightmaps/main.go's
// flag.String/flag.Parse use) into a Settings struct, and separately
// loads the internal, non-CLI tunables (queue depths, pixel-cache
// capacity, thread counts) from an optional tuning file via
// *lac.ConfSubtree, the way NewPriorityRenderer and
// ConstructRenderers take a config subtree instead of bare
// parameters.
package settings

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/maxsupermanhd/cartograph/cartoerr"
	"github.com/maxsupermanhd/cartograph/color"
	"github.com/maxsupermanhd/cartograph/projection"
	"github.com/maxsupermanhd/lac"
)

// Range is the -L N,S,E,W chunk-coordinate crop.
type Range struct {
	North, South, East, West int32
	Enabled                  bool
}

// Settings is the parsed form of the CLI surface named in §6.
type Settings struct {
	WorldPath  string
	OutputPath string

	Top, Bottom int
	RangeArg    Range

	MemoryLimitMB int64
	CachePath     string

	ExcludeIDs []int
	IncludeIDs []int
	HideAll    bool

	Rotation projection.Rotation
	Mode     projection.Mode

	Cave      bool
	Night     bool
	Heightmap bool
	Striped   bool

	Threads int

	PixelSplit int

	PaletteLoadPath string
	PaletteSavePath string

	BlockColorOverrides map[int]color.Color
	CategoryColorRaw    map[string]string

	ShowPlayers     bool
	PlayersFilter   string
	ShowSigns       bool
	SignsPrefix     string
	ShowWarps       string
	ShowCoordinates bool
	WriteMarkersTo  string

	TTFPath  string
	TTFSize  float64
	TTFColor color.Color

	BinaryProgress bool
	Silent         bool
	Debug          bool

	NoCheck    bool
	RequireAll bool
	TuningFile string
	LogFile    string
}

// Parse parses args (normally os.Args[1:]) into a Settings, applying
// the §6 CLI table's defaults (top mode, full Y range, no rotation).
func Parse(args []string) (*Settings, error) {
	fs := flag.NewFlagSet("cartograph", flag.ContinueOnError)

	s := &Settings{BlockColorOverrides: map[int]color.Color{}, CategoryColorRaw: map[string]string{}}

	fs.StringVar(&s.WorldPath, "w", "", "world directory to render")
	fs.StringVar(&s.OutputPath, "o", "out.png", "output PNG path")

	fs.IntVar(&s.Top, "t", 319, "top Y limit")
	fs.IntVar(&s.Bottom, "b", -64, "bottom Y limit")
	rangeArg := fs.String("L", "", "N,S,E,W chunk range crop")

	fs.Int64Var(&s.MemoryLimitMB, "M", 512, "memory limit in MB before falling back to a disk-backed surface")
	fs.StringVar(&s.CachePath, "C", "", "disk cache file path")

	excludeArg := fs.String("e", "", "comma-separated block IDs to exclude")
	includeArg := fs.String("i", "", "comma-separated block IDs to include")
	fs.BoolVar(&s.HideAll, "a", false, "hide all blocks by default (palette-driven include list)")

	rotArg := fs.Int("r", 0, "rotation in degrees: 0, 90, 180, or 270")
	oblique := fs.Bool("q", false, "use oblique projection")
	obliqueAngle := fs.Bool("y", false, "use oblique-angle projection")
	isometric := fs.Bool("z", false, "use isometric projection")

	fs.BoolVar(&s.Cave, "c", false, "cave mode")
	fs.BoolVar(&s.Night, "n", false, "night mode")
	fs.BoolVar(&s.Heightmap, "H", false, "heightmap mode")

	fs.IntVar(&s.Threads, "m", 0, "worker thread count (0: use all CPUs)")

	splitChunks := fs.Bool("p", false, "split output into tiles")
	fs.IntVar(&s.PixelSplit, "pixelsplit", 0, "tile size in pixels when -p is set")

	fs.StringVar(&s.PaletteLoadPath, "P", "", "load block color palette from file")
	fs.StringVar(&s.PaletteSavePath, "W", "", "save block color palette to file")

	blockOverrideArg := fs.String("B", "", "block color overrides (base and side), block=rrggbb[,block=rrggbb...]")
	sideOverrideArg := fs.String("S", "", "block color overrides (base and side, same as -B; applied after -B), block=rrggbb[,block=rrggbb...]")

	showPlayers := fs.String("show-players", "", "player name list, comma-separated (parsed only; no player markers are produced)")
	showPlayersFlag := fs.Bool("show-players-all", false, "player markers (parsed only; no player markers are produced)")
	showSigns := fs.String("show-signs", "", "show sign markers, optionally filtered to a text prefix")
	showSignsFlag := fs.Bool("show-signs-all", false, "show all sign markers")
	fs.StringVar(&s.ShowWarps, "show-warps", "", "warp marker file (parsed only; the file is not read)")
	fs.BoolVar(&s.ShowCoordinates, "show-coordinates", false, "coordinate markers (parsed only; none are produced)")
	fs.StringVar(&s.WriteMarkersTo, "write-markers", "", "export markers as JSON instead of drawing them")

	fs.StringVar(&s.TTFPath, "ttf-path", "", "TTF/OTF font for marker labels")
	fs.Float64Var(&s.TTFSize, "ttf-size", 12, "marker label font size in points")
	ttfColorArg := fs.String("ttf-color", "ffffff", "marker label color, rrggbb (validated only; labels use the marker's swatch color)")
	categoryColorArg := fs.String("marker-colors", "", "per-category marker colors, category=rrggbb[,category=rrggbb...] (parsed only; not applied to drawn markers)")

	fs.BoolVar(&s.BinaryProgress, "x", false, "emit the binary progress protocol on stdout")
	fs.BoolVar(&s.Silent, "s", false, "suppress all non-error output")
	fs.BoolVar(&s.Debug, "D", false, "enable debug logging")

	fs.BoolVar(&s.NoCheck, "no-check", false, "skip the level.dat existence check")
	fs.BoolVar(&s.RequireAll, "require-all", false, "abort the whole render on the first unparsable chunk file or decode failure")
	fs.StringVar(&s.TuningFile, "tuning-file", "", "internal tuning config file")
	fs.StringVar(&s.LogFile, "log-file", "", "write logs to this rotating file instead of stderr")

	if err := fs.Parse(args); err != nil {
		return nil, &cartoerr.ConfigError{Flag: "parse", Err: err}
	}

	if s.WorldPath == "" {
		return nil, &cartoerr.ConfigError{Flag: "-w", Err: fmt.Errorf("world path is required")}
	}

	if err := applyMode(s, *oblique, *obliqueAngle, *isometric); err != nil {
		return nil, err
	}
	if err := applyRotation(s, *rotArg); err != nil {
		return nil, err
	}
	if *rangeArg != "" {
		r, err := parseRange(*rangeArg)
		if err != nil {
			return nil, &cartoerr.ConfigError{Flag: "-L", Err: err}
		}
		s.RangeArg = r
	}
	if *splitChunks && s.PixelSplit <= 0 {
		return nil, &cartoerr.ConfigError{Flag: "-pixelsplit", Err: fmt.Errorf("required when -p is set")}
	}
	if !*splitChunks {
		s.PixelSplit = 0
	}

	ids, err := parseIntList(*excludeArg)
	if err != nil {
		return nil, &cartoerr.ConfigError{Flag: "-e", Err: err}
	}
	s.ExcludeIDs = ids
	ids, err = parseIntList(*includeArg)
	if err != nil {
		return nil, &cartoerr.ConfigError{Flag: "-i", Err: err}
	}
	s.IncludeIDs = ids

	if err := parseBlockColorOverrides(s.BlockColorOverrides, *blockOverrideArg); err != nil {
		return nil, &cartoerr.ConfigError{Flag: "-B", Err: err}
	}
	if err := parseBlockColorOverrides(s.BlockColorOverrides, *sideOverrideArg); err != nil {
		return nil, &cartoerr.ConfigError{Flag: "-S", Err: err}
	}

	c, err := parseHexColor(*ttfColorArg)
	if err != nil {
		return nil, &cartoerr.ConfigError{Flag: "-ttf-color", Err: err}
	}
	s.TTFColor = c

	if err := parseCategoryColors(s.CategoryColorRaw, *categoryColorArg); err != nil {
		return nil, &cartoerr.ConfigError{Flag: "-marker-colors", Err: err}
	}

	s.ShowPlayers = *showPlayersFlag || *showPlayers != ""
	s.PlayersFilter = *showPlayers
	s.ShowSigns = *showSignsFlag || *showSigns != ""
	s.SignsPrefix = *showSigns

	return s, nil
}

func applyMode(s *Settings, oblique, obliqueAngle, isometric bool) error {
	set := 0
	for _, b := range []bool{oblique, obliqueAngle, isometric} {
		if b {
			set++
		}
	}
	if set > 1 {
		return &cartoerr.ConfigError{Flag: "-q/-y/-z", Err: fmt.Errorf("only one projection mode may be selected")}
	}
	switch {
	case oblique:
		s.Mode = projection.Oblique
	case obliqueAngle:
		s.Mode = projection.ObliqueAngle
	case isometric:
		s.Mode = projection.Isometric
	default:
		s.Mode = projection.Top
	}
	return nil
}

func applyRotation(s *Settings, deg int) error {
	switch deg {
	case 0:
		s.Rotation = projection.Rot0
	case 90:
		s.Rotation = projection.Rot90
	case 180:
		s.Rotation = projection.Rot180
	case 270:
		s.Rotation = projection.Rot270
	default:
		return &cartoerr.ConfigError{Flag: "-r", Err: fmt.Errorf("rotation must be 0, 90, 180, or 270, got %d", deg)}
	}
	return nil
}

func parseRange(arg string) (Range, error) {
	parts := strings.Split(arg, ",")
	if len(parts) != 4 {
		return Range{}, fmt.Errorf("expected N,S,E,W, got %q", arg)
	}
	vals := make([]int32, 4)
	for i, p := range parts {
		v, err := strconv.ParseInt(strings.TrimSpace(p), 10, 32)
		if err != nil {
			return Range{}, err
		}
		vals[i] = int32(v)
	}
	return Range{North: vals[0], South: vals[1], East: vals[2], West: vals[3], Enabled: true}, nil
}

func parseIntList(arg string) ([]int, error) {
	if arg == "" {
		return nil, nil
	}
	var out []int
	for _, p := range strings.Split(arg, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func parseBlockColorOverrides(dst map[int]color.Color, arg string) error {
	if arg == "" {
		return nil
	}
	for _, pair := range strings.Split(arg, ",") {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			return fmt.Errorf("expected block=rrggbb, got %q", pair)
		}
		id, err := strconv.Atoi(strings.TrimSpace(kv[0]))
		if err != nil {
			return err
		}
		c, err := parseHexColor(kv[1])
		if err != nil {
			return err
		}
		dst[id] = c
	}
	return nil
}

func parseCategoryColors(dst map[string]string, arg string) error {
	if arg == "" {
		return nil
	}
	for _, pair := range strings.Split(arg, ",") {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			return fmt.Errorf("expected category=rrggbb, got %q", pair)
		}
		dst[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
	}
	return nil
}

func parseHexColor(s string) (color.Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.Color{}, fmt.Errorf("expected a 6-digit hex color, got %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.Color{}, err
	}
	return color.RGBA(uint8(v>>16), uint8(v>>8), uint8(v), 255), nil
}

// Tuning holds the internal, non-CLI knobs threaded through the
// worker pool and compositor as a *lac.ConfSubtree.
type Tuning struct {
	Conf *lac.ConfSubtree
}

// LoadTuning reads path (if non-empty) as a lac config file; an empty
// path yields an empty subtree so every GetD* accessor falls back to
// its built-in default.
func LoadTuning(path string) (*Tuning, error) {
	if path == "" {
		return &Tuning{Conf: lac.NewSubTree(lac.NewConf())}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &cartoerr.IoError{Path: path, Op: "read", Err: err}
	}
	conf, err := lac.FromBytesJSON(data)
	if err != nil {
		return nil, &cartoerr.ConfigError{Flag: "-tuning-file", Err: err}
	}
	return &Tuning{Conf: lac.NewSubTree(conf)}, nil
}
