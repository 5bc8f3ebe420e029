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

// Package cartoerr defines the error kinds of §7: ConfigError,
// WorldError, ParseError, RenderError, IoError, FontError. Each wraps
// an underlying cause and carries the context a diagnostic line needs,
// a wrapped error plus structural context rather than an opaque
// sentinel value.
package cartoerr

import "fmt"

type ConfigError struct {
	Flag string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error for %s: %v", e.Flag, e.Err)
}
func (e *ConfigError) Unwrap() error { return e.Err }

type WorldError struct {
	World string
	Err   error
}

func (e *WorldError) Error() string {
	return fmt.Sprintf("world error (%s): %v", e.World, e.Err)
}
func (e *WorldError) Unwrap() error { return e.Err }

// ParseError carries the file and byte offset a chunk decode failed at,
// grounded on lib/nbtwalk's ConextedError.
type ParseError struct {
	Path   string
	Offset int
	Stage  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s at offset %d (%s): %v", e.Path, e.Offset, e.Stage, e.Err)
}
func (e *ParseError) Unwrap() error { return e.Err }

// RenderError marks an invariant violation in projection arithmetic.
// Per §7 it should never fire in a correct implementation.
type RenderError struct {
	Detail string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render invariant violated: %s", e.Detail)
}

type IoError struct {
	Path string
	Op   string
	Err  error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("io error during %s of %s: %v", e.Op, e.Path, e.Err)
}
func (e *IoError) Unwrap() error { return e.Err }

type FontError struct {
	Path string
	Err  error
}

func (e *FontError) Error() string {
	return fmt.Sprintf("font error (%s): %v", e.Path, e.Err)
}
func (e *FontError) Unwrap() error { return e.Err }
