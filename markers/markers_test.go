package markers

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/maxsupermanhd/cartograph/color"
	"github.com/maxsupermanhd/cartograph/projection"
	"github.com/maxsupermanhd/cartograph/surface"
)

func TestDrawSwatchProjectsAndBlends(t *testing.T) {
	surf := surface.NewMemoryImage(32, 32)
	o := &Overlay{
		Cube:           projection.Cube{BX: 32, BY: 1, BZ: 32, Mode: projection.Top},
		CategoryColors: map[Kind]color.Color{Player: color.RGBA(255, 0, 0, 255)},
	}
	o.Draw(surf, []Marker{{Text: "p1", Kind: Player, Position: projection.Point3{X: 10, Y: 0, Z: 10}}})
	if surf.Get(10, 10) != color.RGBA(255, 0, 0, 255) {
		t.Fatalf("expected swatch color at marker center, got %+v", surf.Get(10, 10))
	}
}

func TestDrawSkipsOffCanvasMarker(t *testing.T) {
	surf := surface.NewMemoryImage(8, 8)
	o := &Overlay{Cube: projection.Cube{BX: 8, BY: 1, BZ: 8, Mode: projection.Top}}
	// a negative-Z marker projects to a negative pixel coordinate,
	// which Draw must skip rather than panic on.
	o.Draw(surf, []Marker{{Text: "neg", Kind: Coordinate, Position: projection.Point3{X: 0, Y: 0, Z: -5}}})
}

func TestExportRoundTripMatchesOverlayCoordinates(t *testing.T) {
	o := &Overlay{Cube: projection.Cube{BX: 32, BY: 1, BZ: 32, Mode: projection.Top}}
	m := Marker{Text: "spawn", Kind: Warp, Position: projection.Point3{X: 4, Y: 64, Z: 7}}
	path := filepath.Join(t.TempDir(), "markers.json")
	if err := o.Export(path, []Marker{m}); err != nil {
		t.Fatalf("Export: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var records []exportRecord
	if err := json.Unmarshal(b, &records); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("want 1 record, got %d", len(records))
	}
	r := records[0]
	wantX, wantY, ok := o.project(m.Position)
	if !ok {
		t.Fatal("expected marker to project on-canvas")
	}
	if r.X != wantX || r.Y != wantY {
		t.Fatalf("exported pixel coords (%d,%d) don't match overlay projection (%d,%d)", r.X, r.Y, wantX, wantY)
	}
	if r.WX != 4 || r.WY != 64 || r.WZ != 7 {
		t.Fatalf("exported world coords wrong: %+v", r)
	}
}
