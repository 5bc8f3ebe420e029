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

// Package cartolog wires up this repo's logging the way the upstream
// server's logger.go does: stderr by default, or a rotating file via
// natefinch/lumberjack when one is configured, with a structured
// log/slog.Logger as the handle every other package is given.
package cartolog

import (
	"io"
	"log/slog"
	"os"

	"github.com/natefinch/lumberjack"
)

// Options configures New. A zero value logs human-readable text to
// stderr.
type Options struct {
	// FilePath, if set, routes logs to a rotating file instead of
	// stderr, per the --log-file CLI supplement.
	FilePath string
	MaxSizeMB int
	Compress  bool
	JSON      bool
	Debug     bool
}

// New builds the process-wide logger. It also returns the
// io.WriteCloser backing it (nil for stderr) so main can flush/close
// it on exit.
func New(opts Options) (*slog.Logger, *lumberjack.Logger) {
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}

	var lj *lumberjack.Logger
	var handler slog.Handler
	handlerOpts := &slog.HandlerOptions{Level: level}

	if opts.FilePath != "" {
		lj = &lumberjack.Logger{
			Filename: opts.FilePath,
			MaxSize:  orDefault(opts.MaxSizeMB, 10),
			Compress: opts.Compress,
		}
		handler = newHandler(lj, opts.JSON, handlerOpts)
	} else {
		handler = newHandler(os.Stderr, opts.JSON, handlerOpts)
	}
	return slog.New(handler), lj
}

func newHandler(w io.Writer, asJSON bool, opts *slog.HandlerOptions) slog.Handler {
	if asJSON {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
