package testkit

import (
	"os"
	"sync/atomic"
	"testing"
	"time"
)

var seam = func() string { return "real" }

func TestMustPanic(t *testing.T) {
	t.Parallel()
	MustPanic(t, func() { panic("boom") })
}

func TestMustContain(t *testing.T) {
	t.Parallel()
	MustContain(t, "dat: 10 states", "10 states")
}

func TestSwap_RestoresAfterSubtest(t *testing.T) {
	t.Run("swapped", func(t *testing.T) {
		Swap(t, &seam, func() string { return "fake" })
		if seam() != "fake" {
			t.Fatalf("swap did not take effect")
		}
	})
	if seam() != "real" {
		t.Fatalf("swap did not restore original")
	}
}

func TestWriteFile(t *testing.T) {
	t.Parallel()
	path := WriteFile(t, "patterns.txt", "he\nshe\n")
	b, err := os.ReadFile(path)
	if err != nil || string(b) != "he\nshe\n" {
		t.Fatalf("read back %q, %v", b, err)
	}
}

func TestEventually(t *testing.T) {
	t.Parallel()
	var n atomic.Int32
	go func() {
		time.Sleep(30 * time.Millisecond)
		n.Store(1)
	}()
	Eventually(t, time.Second, func() bool { return n.Load() == 1 })
}
