package ir_test

import (
	"path/filepath"
	"testing"

	"github.com/go-test/deep"

	"github.com/kaylendog/kali/internal/ir"
)

func TestCacheRoundTrip(t *testing.T) {
	chunk := lower(t, "fn add(a: Int, b: Int) -> Int = a + b")
	path := filepath.Join(t.TempDir(), "add"+ir.CacheExt)

	if err := ir.WriteCache(path, chunk); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ir.ReadCache(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if diff := deep.Equal(*got, *chunk); diff != nil {
		t.Errorf("round-tripped chunk differs: %v", diff)
	}
}

func TestReadCacheMissingFile(t *testing.T) {
	if _, err := ir.ReadCache(filepath.Join(t.TempDir(), "missing.kalic")); err == nil {
		t.Fatal("want error reading a nonexistent cache file, got nil")
	}
}
