package progress

import (
	"bytes"
	"testing"
)

func TestTicksEncodeAsTwoBytes(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)
	r.RenderProgress(42)
	r.CompositeProgress(100)
	r.Done(0)

	want := []byte{byte(Render), 42, byte(Composite), 100, byte(End), 0}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("got %v want %v", buf.Bytes(), want)
	}
}

func TestNilWriterIsNoop(t *testing.T) {
	r := New(nil)
	r.RenderProgress(5) // must not panic
}
