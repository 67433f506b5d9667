// Package infer implements Kali's type inference engine as
// a rewriter.Rewriter instance: it rewrites a Module[source.Span] (the
// parser's output) into a Module[infer.TypedMeta], attaching a resolved
// types.Type to every node without changing the tree's shape at all.
package infer

import (
	"github.com/kaylendog/kali/internal/source"
	"github.com/kaylendog/kali/internal/types"
)

// SpanMeta is the parser's metadata stage: nothing but a span.
type SpanMeta = source.Span

// TypedMeta is the inference engine's output metadata: a span plus the
// type resolved for that node.
type TypedMeta struct {
	Span source.Span
	Type types.Type
}
