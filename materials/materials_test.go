package materials

import (
	"path/filepath"
	"testing"

	"github.com/maxsupermanhd/cartograph/color"
)

func TestSetBaseDerivesSideColor(t *testing.T) {
	tbl := NewTable(4)
	tbl.SetBase(1, "stone", color.RGBA(0x80, 0x80, 0x80, 255))
	m := tbl.Get(1)
	want := color.RGBA(0x60, 0x60, 0x60, 255)
	if m.Side != want {
		t.Fatalf("side = %+v, want %+v", m.Side, want)
	}
	if !m.Draw {
		t.Fatal("SetBase should mark the block drawn")
	}
}

func TestExcludeAndHideAll(t *testing.T) {
	tbl := NewTable(4)
	tbl.SetBase(1, "stone", color.RGBA(128, 128, 128, 255))
	tbl.SetBase(2, "dirt", color.RGBA(100, 60, 20, 255))
	tbl.Exclude(1)
	if tbl.Get(1).Draw {
		t.Fatal("excluded block should be undrawn")
	}
	if !tbl.Get(2).Draw {
		t.Fatal("dirt should still be drawn")
	}
	tbl.HideAll()
	if tbl.Get(2).Draw {
		t.Fatal("HideAll should undraw everything")
	}
	tbl.Include(2)
	if !tbl.Get(2).Draw {
		t.Fatal("Include should restore a block hidden by HideAll")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	tbl := NewTable(2)
	tbl.SetBase(1, "stone", color.RGBA(128, 128, 128, 255))
	tbl.SetTransparent(1, false)
	path := filepath.Join(t.TempDir(), "palette.gob")
	if err := tbl.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded := NewTable(0)
	if err := loaded.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Get(1) != tbl.Get(1) {
		t.Fatalf("round trip mismatch: got %+v want %+v", loaded.Get(1), tbl.Get(1))
	}
}

func TestGetOutOfRangeReturnsZeroValue(t *testing.T) {
	tbl := NewTable(2)
	m := tbl.Get(99)
	if m.Draw || !m.Base.IsInvisible() {
		t.Fatalf("out-of-range material should be zero value, got %+v", m)
	}
}
