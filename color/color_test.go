package color

import "testing"

func TestBlendInvisibleIsIdentity(t *testing.T) {
	dst := RGBA(10, 20, 30, 255)
	got := dst.Blend(Invisible)
	if got != dst {
		t.Fatalf("blend with invisible changed color: got %+v want %+v", got, dst)
	}
}

func TestBlendOpaqueOverwrites(t *testing.T) {
	dst := RGBA(10, 20, 30, 255)
	src := RGBA(200, 0, 0, 255)
	got := dst.Blend(src)
	if got != src {
		t.Fatalf("blend with opaque src: got %+v want %+v", got, src)
	}
}

func TestBlendHalfAlphaOverOpaque(t *testing.T) {
	dst := RGBA(0, 0, 0, 255)
	src := RGBA(255, 255, 255, 128)
	got := dst.Blend(src)
	if got.A != 255 {
		t.Fatalf("result alpha should stay opaque, got %d", got.A)
	}
	// sa=128, da=255*(255-128)/255=127, outA=255
	// ch = (255*128 + 0*127)/255 = 128
	if got.R != 128 || got.G != 128 || got.B != 128 {
		t.Fatalf("unexpected blended channel values: %+v", got)
	}
}

func TestDarkenSaturates(t *testing.T) {
	c := RGBA(10, 5, 0, 200)
	got := c.Darken(0x20)
	if got.R != 0 || got.G != 0 || got.B != 0 {
		t.Fatalf("darken should saturate at 0: %+v", got)
	}
	if got.A != 200 {
		t.Fatalf("darken must not touch alpha: %+v", got)
	}
}

func TestIsInvisibleTransparentOpaque(t *testing.T) {
	if !Invisible.IsInvisible() {
		t.Fatal("zero value must be invisible")
	}
	c := RGBA(1, 2, 3, 128)
	if !c.IsTransparent() || c.IsOpaque() || c.IsInvisible() {
		t.Fatalf("a=128 color classified wrong: %+v", c)
	}
	o := RGBA(1, 2, 3, 255)
	if !o.IsOpaque() || o.IsTransparent() || o.IsInvisible() {
		t.Fatalf("a=255 color classified wrong: %+v", o)
	}
}

func TestReadWriteRoundTrip(t *testing.T) {
	c := RGBA(11, 22, 33, 44)
	b := make([]byte, 4)
	c.Write(b)
	got := Read(b)
	if got != c {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, c)
	}
}
