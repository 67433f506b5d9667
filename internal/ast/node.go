// Package ast defines Kali's span-annotated, metadata-parameterized syntax
// tree. Every concrete node type is generic over Meta,
// the type-state threaded through the pipeline: the parser emits
// Meta = source.Span (see infer.SpanMeta); the inference engine rewrites
// that into Meta = infer.TypedMeta (span + resolved type), without the
// tree shape itself changing at all.
package ast

import "github.com/kaylendog/kali/internal/source"

// Node is the generic carrier embedded in every concrete AST type. T is
// implicit in which concrete Go type embeds Node[Meta], so the same tree
// shape is reused across every pipeline stage just by changing Meta.
type Node[Meta any] struct {
	SpanV source.Span
	MetaV Meta
}

// Span returns the node's source span.
func (n Node[Meta]) Span() source.Span { return n.SpanV }

// Meta returns the node's stage-specific metadata.
func (n Node[Meta]) Meta() Meta { return n.MetaV }

// NewNode constructs a Node with the given span and metadata.
func NewNode[Meta any](span source.Span, meta Meta) Node[Meta] {
	return Node[Meta]{SpanV: span, MetaV: meta}
}
