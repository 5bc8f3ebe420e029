package cartolog

import "testing"

func TestNewDefaultsToStderr(t *testing.T) {
	logger, lj := New(Options{})
	if logger == nil {
		t.Fatal("expected non-nil logger")
	}
	if lj != nil {
		t.Fatal("expected no lumberjack file handle without FilePath")
	}
}

func TestNewWithFilePath(t *testing.T) {
	logger, lj := New(Options{FilePath: t.TempDir() + "/cartograph.log"})
	if logger == nil || lj == nil {
		t.Fatal("expected both logger and file handle when FilePath is set")
	}
}
