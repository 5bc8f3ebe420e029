package world

import (
	"encoding/binary"
	"testing"
)

func buildTestNBT(xPos, zPos int32) []byte {
	buf := []byte{tagCompound, 0, 0} // root compound, empty name

	putInt := func(name string, v int32) {
		buf = append(buf, tagInt)
		buf = append(buf, byte(len(name)>>8), byte(len(name)))
		buf = append(buf, name...)
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], uint32(v))
		buf = append(buf, b[:]...)
	}
	putInt("xPos", xPos)
	putInt("zPos", zPos)
	buf = append(buf, tagEnd)
	return buf
}

func TestScanHeaderFindsPositions(t *testing.T) {
	data := buildTestNBT(5, -3)
	x, z, err := ScanHeader(data)
	if err != nil {
		t.Fatalf("ScanHeader: %v", err)
	}
	if x != 5 || z != -3 {
		t.Fatalf("got (%d,%d), want (5,-3)", x, z)
	}
}

func TestScanHeaderSkipsNestedStructures(t *testing.T) {
	buf := []byte{tagCompound, 0, 0}
	// an unrelated nested compound field before xPos/zPos
	buf = append(buf, tagCompound)
	buf = append(buf, 0, 5)
	buf = append(buf, "Level"...)
	buf = append(buf, tagByte, 0, 3)
	buf = append(buf, "foo"...)
	buf = append(buf, 7) // byte payload
	buf = append(buf, tagEnd)
	// a list of compounds (shaped like Sections)
	buf = append(buf, tagList)
	buf = append(buf, 0, 8)
	buf = append(buf, "Sections"...)
	buf = append(buf, tagCompound)
	var countBuf [4]byte
	binary.BigEndian.PutUint32(countBuf[:], 2)
	buf = append(buf, countBuf[:]...)
	for i := 0; i < 2; i++ {
		buf = append(buf, tagByte, 0, 1)
		buf = append(buf, "Y"...)
		buf = append(buf, byte(i))
		buf = append(buf, tagEnd)
	}
	rest := buildTestNBT(10, 20)[3:] // skip the other test's root header
	buf = append(buf, rest...)
	x, z, err := ScanHeader(buf)
	if err != nil {
		t.Fatalf("ScanHeader: %v", err)
	}
	if x != 10 || z != 20 {
		t.Fatalf("got (%d,%d), want (10,20)", x, z)
	}
}

func TestScanHeaderMissingFieldsErrors(t *testing.T) {
	buf := []byte{tagCompound, 0, 0, tagEnd}
	if _, _, err := ScanHeader(buf); err == nil {
		t.Fatal("expected error for missing xPos/zPos")
	}
}

func TestSplitOmitsEmptyTiles(t *testing.T) {
	info := &Info{
		MinX: 0, MaxX: 3, MinZ: 0, MaxZ: 3,
		Chunks: []ChunkDesc{
			{XPos: 0, ZPos: 0, Path: "a"},
			{XPos: 1, ZPos: 1, Path: "b"},
			{XPos: 3, ZPos: 3, Path: "c"},
		},
	}
	tiles := info.Split(2)
	if len(tiles) != 2 {
		t.Fatalf("want 2 non-empty tiles, got %d", len(tiles))
	}
	total := 0
	for _, tl := range tiles {
		total += len(tl.Chunks)
	}
	if total != 3 {
		t.Fatalf("want all 3 chunks distributed, got %d", total)
	}
}

func TestRangeContains(t *testing.T) {
	r := Range{North: 0, South: 10, East: 10, West: 0, Enabled: true}
	if !r.contains(5, 5) {
		t.Fatal("(5,5) should be inside range")
	}
	if r.contains(-1, 5) {
		t.Fatal("(-1,5) should be outside range")
	}
	disabled := Range{}
	if !disabled.contains(-100, 100) {
		t.Fatal("disabled range should accept everything")
	}
}
