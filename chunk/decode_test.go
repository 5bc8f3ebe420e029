package chunk

import "testing"

func TestInternerAssignsStableIDs(t *testing.T) {
	in := NewInterner()
	a := in.ID("minecraft:stone")
	b := in.ID("minecraft:dirt")
	if in.ID("minecraft:stone") != a {
		t.Fatal("re-interning the same name should return the same ID")
	}
	if a == b {
		t.Fatal("distinct names should get distinct IDs")
	}
	if in.Name(a) != "minecraft:stone" || in.Name(b) != "minecraft:dirt" {
		t.Fatal("Name should invert ID")
	}
	if in.Name(999) != "" {
		t.Fatal("out-of-range Name should return empty string, not panic")
	}
}

func TestUnpackPaletteIndicesFourBitMinimum(t *testing.T) {
	// paletteLen=2 still packs at 4 bits/entry (the format's minimum),
	// so 16 entries fit in one 64-bit word.
	var word uint64
	for i := 0; i < 16; i++ {
		if i%2 == 1 {
			word |= uint64(1) << uint(i*4)
		}
	}
	got := unpackPaletteIndices([]uint64{word}, 16, 2)
	for i, v := range got {
		want := 0
		if i%2 == 1 {
			want = 1
		}
		if v != want {
			t.Fatalf("index %d: got %d want %d", i, v, want)
		}
	}
}

func TestUnpackPaletteIndicesWiderPalette(t *testing.T) {
	// paletteLen=17 needs 5 bits/entry; perWord = 64/5 = 12.
	const bits = 5
	values := []int{0, 1, 2, 3, 16, 15, 14, 13, 12, 11, 10, 9}
	var word uint64
	for i, v := range values {
		word |= uint64(v) << uint(i*bits)
	}
	got := unpackPaletteIndices([]uint64{word}, len(values), 17)
	for i, want := range values {
		if got[i] != want {
			t.Fatalf("index %d: got %d want %d", i, got[i], want)
		}
	}
}

func TestDataBlockOutOfBoundsReturnsAir(t *testing.T) {
	d := &Data{MapX: 2, MapY: 2, MapZ: 2, MinY: 0, Blocks: make([]int, 8)}
	if got := d.Block(-1, 0, 0); got != 0 {
		t.Fatalf("out-of-bounds Block should return 0 (air), got %d", got)
	}
	if got := d.Block(0, 100, 0); got != 0 {
		t.Fatalf("out-of-range Y should return 0 (air), got %d", got)
	}
}

func TestSignTextSkipsEmptyAndPicksFirstNonEmpty(t *testing.T) {
	bd := map[string]any{
		"Text1": "{\"text\":\"\"}",
		"Text2": "hello",
		"Text3": "world",
	}
	if got := signText(bd); got != "hello" {
		t.Fatalf("got %q want %q", got, "hello")
	}
}

func TestBlockEntityPosReadsOwnCoordinates(t *testing.T) {
	bd := map[string]any{"x": int32(37), "y": int32(64), "z": int32(-12)}
	x, y, z := blockEntityPos(bd)
	if x != 37 || y != 64 || z != -12 {
		t.Fatalf("got (%d,%d,%d) want (37,64,-12)", x, y, z)
	}
}

func TestSignTextAllEmpty(t *testing.T) {
	bd := map[string]any{"Text1": "", "Text2": "{\"text\":\"\"}"}
	if got := signText(bd); got != "" {
		t.Fatalf("want empty string for an all-blank sign, got %q", got)
	}
}
