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

// Package materials holds the per-block-ID color table consulted by
// the chunk renderer (§3/§4.4). Palette *file* parsing is out of
// scope (§1) — this package only models the table the parser would
// have populated, and the save/load of it as a process-local cache.
package materials

import (
	"bytes"
	"encoding/gob"
	"os"

	"github.com/maxsupermanhd/cartograph/color"
)

// sideDarken is the fixed delta applied to base_color to derive a
// block's default side_color, per §4.4.
const sideDarken = 0x20

// Material is one block ID's rendering identity.
type Material struct {
	Name      string
	Base      color.Color
	Side      color.Color
	IsTransparent bool
	Draw      bool
}

// Table is a dense, block-ID-indexed array, built once at startup and
// read-only thereafter (§3: "no global mutable state other than the
// MaterialTable"). Index 0 is conventionally air.
type Table struct {
	entries []Material
}

// NewTable allocates a table sized for size block IDs, every entry
// starting undrawn (as if hidden by a global hide-all) until SetBase
// populates it or Include marks it drawn. This mirrors the "included after a global
// hide-all" palette effect named in §4.4.
func NewTable(size int) *Table {
	return &Table{entries: make([]Material, size)}
}

func (t *Table) grow(id int) {
	if id < len(t.entries) {
		return
	}
	n := make([]Material, id+1)
	copy(n, t.entries)
	t.entries = n
}

// Len reports the number of block IDs the table currently holds.
func (t *Table) Len() int { return len(t.entries) }

// Get returns the material for id, or the zero Material (undrawn,
// invisible colors) if id is out of range.
func (t *Table) Get(id int) Material {
	if id < 0 || id >= len(t.entries) {
		return Material{}
	}
	return t.entries[id]
}

// SetBase installs name/base for id and derives side as base darkened
// by sideDarken, per §4.4's default. Marks the block drawn and opaque
// unless overridden by a later Exclude/SetTransparent call.
func (t *Table) SetBase(id int, name string, base color.Color) {
	t.grow(id)
	t.entries[id] = Material{
		Name: name,
		Base: base,
		Side: base.Darken(sideDarken),
		Draw: true,
	}
}

// SetSide overrides the derived side color for id.
func (t *Table) SetSide(id int, side color.Color) {
	t.grow(id)
	t.entries[id].Side = side
}

// SetTransparent marks id as a transparent material (glass, water).
func (t *Table) SetTransparent(id int, transparent bool) {
	t.grow(id)
	t.entries[id].IsTransparent = transparent
}

// Exclude forces id invisible regardless of its colors — the palette
// "excluded" effect from §4.4.
func (t *Table) Exclude(id int) {
	t.grow(id)
	t.entries[id].Draw = false
}

// Include reverses Exclude, or lifts a block out of the global
// hide-all a HideAll call put it under.
func (t *Table) Include(id int) {
	t.grow(id)
	t.entries[id].Draw = true
}

// HideAll marks every currently-known block ID undrawn, modeling a
// palette's global hide-all directive; subsequent Include calls
// selectively restore blocks.
func (t *Table) HideAll() {
	for i := range t.entries {
		t.entries[i].Draw = false
	}
}

// Recolor overrides both base and side color for an already-known
// block, leaving its transparency/draw flags untouched.
func (t *Table) Recolor(id int, base, side color.Color) {
	t.grow(id)
	t.entries[id].Base = base
	t.entries[id].Side = side
}

// gobTable is the on-disk shape, kept distinct from Table so the
// serialized format doesn't depend on the in-memory slice header.
type gobTable struct {
	Entries []Material
}

// Save persists the table to path via encoding/gob, the same format
// the upstream renderer's colors.go uses for its own color palette.
func (t *Table) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(gobTable{Entries: t.entries})
}

// Load replaces the table's contents with what was saved by Save.
func (t *Table) Load(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var g gobTable
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&g); err != nil {
		return err
	}
	t.entries = g.Entries
	return nil
}
