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

// Package progress implements the binary progress protocol of §6: a
// stream of 2-byte big-endian <type><value> ticks written to an
// arbitrary io.Writer (stdout by default, or a named pipe/socket a
// caller wired up for a GUI frontend), so a driving process can render
// a progress bar without scraping log text.
package progress

import "io"

// Kind is the first byte of one progress tick.
type Kind byte

const (
	Render    Kind = 0x10
	Composite Kind = 0x20
	ImageWrite Kind = 0x30
	Parse     Kind = 0x40
	ErrorTick Kind = 0x01
	End       Kind = 0xF0
)

// Reporter writes progress ticks to w. A nil w is valid and makes
// every call a no-op, so callers can unconditionally report progress
// without checking whether a consumer is attached.
type Reporter struct {
	w io.Writer
}

func New(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

func (r *Reporter) emit(k Kind, value byte) {
	if r == nil || r.w == nil {
		return
	}
	r.w.Write([]byte{byte(k), value})
}

// Tick reports one unit of progress of the given kind. value is
// typically a fraction scaled to 0-255, (part*0xff)/whole, or a small
// saturating counter; it is the caller's responsibility to keep it in
// range for the kind.
func (r *Reporter) Tick(k Kind, value byte) { r.emit(k, value) }

func (r *Reporter) RenderProgress(pct byte)    { r.emit(Render, pct) }
func (r *Reporter) CompositeProgress(pct byte) { r.emit(Composite, pct) }
func (r *Reporter) ImageWriteProgress(pct byte) { r.emit(ImageWrite, pct) }
func (r *Reporter) ParseProgress(pct byte)     { r.emit(Parse, pct) }

// Error reports that an error occurred, fatal or not; code is left to
// the caller (0 is used when no finer classification applies).
func (r *Reporter) Error(code byte) { r.emit(ErrorTick, code) }

// Done signals the run has finished; code 0 means success.
func (r *Reporter) Done(code byte) { r.emit(End, code) }
