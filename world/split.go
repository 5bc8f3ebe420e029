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

package world

// Split partitions the world into contiguous n*n (in chunk count)
// tiles, each its own Info with ChunkX/ChunkY identifying its
// position among tiles. Tiles with no chunks in them are omitted,
// per §4.6.
func (info *Info) Split(n int) []*Info {
	if n <= 0 {
		n = 1
	}
	tiles := map[[2]int]*Info{}
	for _, c := range info.Chunks {
		tx := tileIndex(c.XPos-info.MinX, n)
		ty := tileIndex(c.ZPos-info.MinZ, n)
		key := [2]int{tx, ty}
		t, ok := tiles[key]
		if !ok {
			t = &Info{
				MinX: info.MinX + int32(tx*n), MaxX: info.MinX + int32(tx*n+n-1),
				MinZ: info.MinZ + int32(ty*n), MaxZ: info.MinZ + int32(ty*n+n-1),
				ChunkX: tx, ChunkY: ty,
			}
			tiles[key] = t
		}
		t.Chunks = append(t.Chunks, c)
	}
	out := make([]*Info, 0, len(tiles))
	for _, t := range tiles {
		out = append(out, t)
	}
	return out
}

func tileIndex(offset int32, n int) int {
	if offset >= 0 {
		return int(offset) / n
	}
	// floor division toward negative infinity, so chunks on the
	// negative side of the origin still tile contiguously.
	return -((-int(offset) + n - 1) / n)
}
