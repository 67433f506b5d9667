package lexer_test

import (
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/kaylendog/kali/internal/lexer"
	"github.com/kaylendog/kali/internal/source"
	"github.com/kaylendog/kali/internal/token"
)

// Golden fixtures bundle a source snippet with the sequence of content
// token kinds it must scan to (layout markers excluded, since their exact
// placement is the indentation state machine's concern, not the scanner's
// classification of a lexeme), the same txtar archive format the Go
// toolchain's own compiler tests use for source+expectation pairs.
const goldenArchive = `
-- let.kali --
let x = 1
-- let.kinds --
let
identifier
=
natural literal

-- fn.kali --
fn double(n) -> n * 2
-- fn.kinds --
fn
identifier
(
identifier
)
->
identifier
*
natural literal
`

func isLayout(k token.Kind) bool {
	return k == token.Newline || k == token.BlockStart || k == token.BlockEnd || k == token.EOF
}

func TestLexerGolden(t *testing.T) {
	archive := txtar.Parse([]byte(goldenArchive))
	sources := map[string]string{}
	wants := map[string][]string{}
	for _, f := range archive.Files {
		name, ext, ok := strings.Cut(f.Name, ".")
		if !ok {
			t.Fatalf("malformed fixture name %q", f.Name)
		}
		switch ext {
		case "kali":
			sources[name] = strings.TrimRight(string(f.Data), "\n")
		case "kinds":
			for _, line := range strings.Split(strings.TrimRight(string(f.Data), "\n"), "\n") {
				if line != "" {
					wants[name] = append(wants[name], line)
				}
			}
		}
	}
	if len(sources) == 0 {
		t.Fatal("golden archive contained no .kali sources")
	}

	for name, src := range sources {
		want, ok := wants[name]
		if !ok {
			t.Fatalf("fixture %q has no matching .kinds expectation", name)
		}
		fs := source.NewFileSet()
		file := fs.Add(name, []byte(src))
		raw := lexer.New(file, src)
		il := lexer.NewIndentLexer(raw)
		toks := il.Tokenize()
		if len(il.Errors) > 0 || len(raw.Errors) > 0 {
			t.Fatalf("%s: unexpected lexical errors: raw=%v indent=%v", name, raw.Errors, il.Errors)
		}

		var got []string
		for _, tok := range toks {
			if isLayout(tok.Kind) {
				continue
			}
			got = append(got, tok.Kind.String())
		}
		if len(got) != len(want) {
			t.Fatalf("%s: got %v, want %v", name, got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("%s: token %d = %s, want %s", name, i, got[i], want[i])
			}
		}
	}
}

func TestIndentLexerInsertsBlockMarkers(t *testing.T) {
	src := "fn f(x) ->\n    x\ny\n"
	fs := source.NewFileSet()
	file := fs.Add("f.kali", []byte(src))
	raw := lexer.New(file, src)
	il := lexer.NewIndentLexer(raw)
	toks := il.Tokenize()

	foundStart, foundEnd := false, false
	for _, tok := range toks {
		switch tok.Kind {
		case token.BlockStart:
			foundStart = true
		case token.BlockEnd:
			foundEnd = true
		}
	}
	if !foundStart || !foundEnd {
		t.Fatalf("expected both BlockStart and BlockEnd in output, got %v", toks)
	}
}
