package surface

import (
	"testing"

	"github.com/maxsupermanhd/cartograph/color"
)

func TestOpaqueDedupS4(t *testing.T) {
	ops := NewImageOperations(8, 8)
	if !ops.Add(0, 0, color.RGBA(255, 0, 0, 255)) {
		t.Fatal("first opaque add should succeed")
	}
	if ops.Add(0, 0, color.RGBA(0, 0, 255, 255)) {
		t.Fatal("second opaque add at same pixel should be dropped")
	}
	if ops.Len() != 1 {
		t.Fatalf("want 1 stored op, got %d", ops.Len())
	}
	if ops.ops[0].C != color.RGBA(255, 0, 0, 255) {
		t.Fatalf("surviving op should be the red one, got %+v", ops.ops[0].C)
	}
}

func TestTransparentAccumulation(t *testing.T) {
	ops := NewImageOperations(8, 8)
	for i := 0; i < 5; i++ {
		if !ops.Add(1, 1, color.RGBA(uint8(i), 0, 0, 128)) {
			t.Fatalf("transparent add %d should succeed", i)
		}
	}
	if ops.Len() != 5 {
		t.Fatalf("want 5 stored ops, got %d", ops.Len())
	}
}

func TestRejectOutOfBoundsAndInvisible(t *testing.T) {
	ops := NewImageOperations(4, 4)
	if ops.Add(4, 0, color.RGBA(1, 1, 1, 255)) {
		t.Fatal("x==maxx must be rejected")
	}
	if ops.Add(-1, 0, color.RGBA(1, 1, 1, 255)) {
		t.Fatal("negative x must be rejected")
	}
	if ops.Add(0, 0, color.Invisible) {
		t.Fatal("invisible color must be rejected")
	}
	if ops.Len() != 0 {
		t.Fatalf("nothing should have been stored, got %d", ops.Len())
	}
}

func TestTransparentOverOpaqueS5(t *testing.T) {
	ops := NewImageOperations(8, 8)
	// Mirrors how the chunk renderer's top-down column scan actually
	// populates one pixel's ops: the transparent voxel sits above the
	// opaque one, so it is encountered and added first; the opaque
	// voxel underneath is added second and claims the bitmap.
	ops.Add(0, 0, color.RGBA(255, 255, 255, 128)) // transparent white, found first (above)
	ops.Add(0, 0, color.RGBA(0, 0, 0, 255))       // opaque black, found second (below)

	img := NewMemoryImage(8, 8)
	img.Composite(0, 0, ops)
	got := img.Get(0, 0)
	// Playback is tail-to-head: black (inserted last) is applied
	// first, giving an opaque base; white (inserted first) is applied
	// last, blending on top of it. Half-alpha white over black yields
	// mid-gray, opaque.
	want := color.RGBA(128, 128, 128, 255)
	if got != want {
		t.Fatalf("white-over-black got %+v want %+v", got, want)
	}
}
