package ir

import (
	"fmt"
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

// CacheExt is the extension for a serialized, pre-lowered Chunk.
const CacheExt = ".kalic"

// WriteCache serializes chunk to path as msgpack, so a later run can
// skip lexing, parsing, inference, and lowering entirely.
func WriteCache(path string, chunk *Chunk) error {
	data, err := msgpack.Marshal(chunk)
	if err != nil {
		return fmt.Errorf("ir: encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("ir: write %s: %w", path, err)
	}
	return nil
}

// ReadCache deserializes a Chunk previously written by WriteCache.
func ReadCache(path string) (*Chunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ir: read %s: %w", path, err)
	}
	var chunk Chunk
	if err := msgpack.Unmarshal(data, &chunk); err != nil {
		return nil, fmt.Errorf("ir: decode %s: %w", path, err)
	}
	return &chunk, nil
}
