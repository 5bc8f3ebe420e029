package projection

import "testing"

func TestTopProjectionS1(t *testing.T) {
	c := Cube{BX: 16, BY: 128, BZ: 16, Mode: Top}
	x, y, ok := c.Project(Point3{3, 50, 4})
	if !ok || x != 3 || y != 4 {
		t.Fatalf("got (%d,%d,%v) want (3,4,true)", x, y, ok)
	}
	w, h := c.Dimensions()
	if w != 16 || h != 16 {
		t.Fatalf("canvas got %dx%d want 16x16", w, h)
	}
}

func TestObliqueAngleProjectionS2(t *testing.T) {
	c := Cube{BX: 16, BY: 128, BZ: 16, Mode: ObliqueAngle}
	x, y, ok := c.Project(Point3{0, 0, 0})
	if !ok || x != 0 || y != 144 {
		t.Fatalf("got (%d,%d,%v) want (0,144,true)", x, y, ok)
	}
	w, h := c.Dimensions()
	if w != 32 || h != 160 {
		t.Fatalf("canvas got %dx%d want 32x160", w, h)
	}
}

func TestIsometricProjectionS3(t *testing.T) {
	c := Cube{BX: 16, BY: 128, BZ: 16, Mode: Isometric}
	x, y, ok := c.Project(Point3{8, 64, 8})
	if !ok || x != 32 || y != 144 {
		t.Fatalf("got (%d,%d,%v) want (32,144,true)", x, y, ok)
	}
}

func TestProjectionDimensionsInvariant(t *testing.T) {
	modes := []Mode{Top, Oblique, ObliqueAngle, Isometric}
	bx, by, bz := 16, 128, 16
	for _, m := range modes {
		c := Cube{BX: bx, BY: by, BZ: bz, Mode: m}
		w, h := c.Dimensions()
		for px := 0; px < bx; px += 5 {
			for py := 0; py < by; py += 17 {
				for pz := 0; pz < bz; pz += 5 {
					x, y, ok := c.Project(Point3{px, py, pz})
					if !ok {
						t.Fatalf("mode %v point (%d,%d,%d) rejected", m, px, py, pz)
					}
					if x < 0 || x >= w || y < 0 || y >= h {
						t.Fatalf("mode %v point (%d,%d,%d) -> (%d,%d) outside canvas %dx%d", m, px, py, pz, x, y, w, h)
					}
				}
			}
		}
	}
}

func TestRotationRoundTrip(t *testing.T) {
	p := Point3{5, 7, -3}
	got := p
	for i := 0; i < 4; i++ {
		got = Rotate(got, Rot90)
	}
	if got != p {
		t.Fatalf("four 90deg rotations should return original point: got %+v want %+v", got, p)
	}
}
