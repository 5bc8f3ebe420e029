package chunk

import (
	"testing"

	"github.com/maxsupermanhd/cartograph/color"
	"github.com/maxsupermanhd/cartograph/materials"
	"github.com/maxsupermanhd/cartograph/projection"
)

func flatData(mapX, mapY, mapZ, minY, solidID, airID int) *Data {
	d := &Data{MapX: mapX, MapY: mapY, MapZ: mapZ, MinY: minY}
	d.Blocks = make([]int, mapX*mapY*mapZ)
	d.SkyLight = make([]uint8, len(d.Blocks))
	d.BlockLight = make([]uint8, len(d.Blocks))
	for y := 0; y < mapY; y++ {
		for z := 0; z < mapZ; z++ {
			for x := 0; x < mapX; x++ {
				id := airID
				if y < 2 {
					id = solidID
				}
				d.Blocks[d.index(x, y, z)] = id
			}
		}
	}
	return d
}

func singleLayerData(mapX, mapY, mapZ, minY, solidID, airID int) *Data {
	d := &Data{MapX: mapX, MapY: mapY, MapZ: mapZ, MinY: minY}
	d.Blocks = make([]int, mapX*mapY*mapZ)
	d.SkyLight = make([]uint8, len(d.Blocks))
	d.BlockLight = make([]uint8, len(d.Blocks))
	for y := 0; y < mapY; y++ {
		for z := 0; z < mapZ; z++ {
			for x := 0; x < mapX; x++ {
				id := airID
				if y == 0 {
					id = solidID
				}
				d.Blocks[d.index(x, y, z)] = id
			}
		}
	}
	return d
}

func baseMaterials() *materials.Table {
	mat := materials.NewTable(2)
	mat.SetBase(1, "minecraft:stone", color.RGBA(128, 128, 128, 255))
	return mat
}

func TestRenderTopModeOnePixelPerColumn(t *testing.T) {
	d := flatData(4, 4, 4, 0, 1, 0)
	mat := baseMaterials()
	s := Settings{Mode: projection.Top, Top: 3, Bottom: 0, DayFactor: 1}
	ops := Render(d, mat, s)
	if ops.Len() != 16 {
		t.Fatalf("want 16 ops for a 4x4 top-mode column set, got %d", ops.Len())
	}
}

func TestRenderObliqueModeTwoPixelsPerVoxel(t *testing.T) {
	// A single solid layer at y=0 under one layer of air: each of the
	// 4 columns has exactly one visible voxel, so each contributes its
	// base-face and side-face pixel with nothing left to collide with.
	d := singleLayerData(2, 2, 2, 0, 1, 0)
	mat := baseMaterials()
	s := Settings{Mode: projection.Oblique, Top: 1, Bottom: 0, DayFactor: 1}
	ops := Render(d, mat, s)
	if ops.Len() != 8 {
		t.Fatalf("want 8 ops (4 columns * 2), got %d", ops.Len())
	}
}

func TestRenderExcludedMaterialSkipped(t *testing.T) {
	d := flatData(2, 4, 2, 0, 1, 0)
	mat := baseMaterials()
	s := Settings{Mode: projection.Top, Top: 3, Bottom: 0, DayFactor: 1, Excluded: map[int]bool{1: true}}
	ops := Render(d, mat, s)
	if ops.Len() != 0 {
		t.Fatalf("want 0 ops when the only solid material is excluded, got %d", ops.Len())
	}
}

func TestRenderHeightmapModeGrayscale(t *testing.T) {
	d := flatData(1, 4, 1, 0, 1, 0)
	mat := baseMaterials()
	s := Settings{Mode: projection.Top, Top: 3, Bottom: 0, DayFactor: 1, Heightmap: true}
	ops := Render(d, mat, s)
	if ops.Len() != 1 {
		t.Fatalf("want 1 op, got %d", ops.Len())
	}
	c := ops.Reversed()[0].C
	if c.R != c.G || c.G != c.B {
		t.Fatalf("heightmap color should be neutral gray, got %+v", c)
	}
}

func TestRenderNightModeZeroLightIsTinted(t *testing.T) {
	d := flatData(1, 4, 1, 0, 1, 0)
	mat := baseMaterials()
	s := Settings{Mode: projection.Top, Top: 3, Bottom: 0, DayFactor: 1, Night: true}
	ops := Render(d, mat, s)
	if ops.Len() != 1 {
		t.Fatalf("want 1 op, got %d", ops.Len())
	}
	if ops.Reversed()[0].C != nightTint {
		t.Fatalf("zero-light voxel should use the fixed night tint, got %+v", ops.Reversed()[0].C)
	}
}

func TestRenderCaveModeTreatsExcludedAsAir(t *testing.T) {
	// Same floor/ceiling column as TestRenderCaveModeSkipsCeiling, but
	// stone (both the ceiling and the floor) is excluded: it is treated
	// as air, so no ceiling opens a cave region and nothing is drawn.
	d := &Data{MapX: 1, MapY: 5, MapZ: 1, MinY: 0}
	d.Blocks = []int{0, 1, 0, 0, 1}
	d.SkyLight = make([]uint8, 5)
	d.BlockLight = make([]uint8, 5)
	mat := baseMaterials()
	s := Settings{Mode: projection.Top, Top: 4, Bottom: 0, DayFactor: 1, Cave: true, Excluded: map[int]bool{1: true}}
	ops := Render(d, mat, s)
	if ops.Len() != 0 {
		t.Fatalf("want 0 ops when both the ceiling and floor material are excluded, got %d", ops.Len())
	}
}

func TestRenderCaveModeSkipsCeiling(t *testing.T) {
	// A 1x5x1 column from y=0 up: air, stone (floor), air, air, stone
	// (ceiling, the first opaque block found descending from y=4).
	d := &Data{MapX: 1, MapY: 5, MapZ: 1, MinY: 0}
	d.Blocks = []int{0, 1, 0, 0, 1}
	d.SkyLight = make([]uint8, 5)
	d.BlockLight = make([]uint8, 5)
	mat := baseMaterials()
	s := Settings{Mode: projection.Top, Top: 4, Bottom: 0, DayFactor: 1, Cave: true}
	ops := Render(d, mat, s)
	if ops.Len() != 1 {
		t.Fatalf("want 1 op (the cave floor only), got %d", ops.Len())
	}
}
