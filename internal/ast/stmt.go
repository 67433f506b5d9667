package ast

import "github.com/kaylendog/kali/internal/source"

// Stmt is the sum of module-level and block-level statement forms.
type Stmt[Meta any] interface {
	isStmt()
	Span() source.Span
	Meta() Meta
}

// ImportName is one imported symbol, with an optional alias.
type ImportName struct {
	Name  string
	Alias string // empty if unaliased
}

// ImportStmt is `import path::to::module (a, b as c)`.
type ImportStmt[Meta any] struct {
	Node[Meta]
	Path  []string
	Names []ImportName
}

func (ImportStmt[Meta]) isStmt() {}

// ExportStmt is `export name`, re-exposing a module-local binding.
type ExportStmt[Meta any] struct {
	Node[Meta]
	Name string
}

func (ExportStmt[Meta]) isStmt() {}

// ConstDecl is `const name: Type = value`.
type ConstDecl[Meta any] struct {
	Node[Meta]
	Name  string
	Type  TypeExpr[Meta] // nil if unannotated
	Value Expr[Meta]
}

func (ConstDecl[Meta]) isStmt() {}

// TypeDecl is `type Name = TypeExpr`, a type alias declaration.
type TypeDecl[Meta any] struct {
	Node[Meta]
	Name string
	Type TypeExpr[Meta]
}

func (TypeDecl[Meta]) isStmt() {}

// Decl is `let name: Type = value`, a plain value binding.
type Decl[Meta any] struct {
	Node[Meta]
	Name  string
	Type  TypeExpr[Meta] // nil if unannotated
	Value Expr[Meta]
}

func (Decl[Meta]) isStmt() {}

// FuncDecl is `fn name(params) -> ReturnType = body`, declared at module
// scope so its name is visible for recursive and forward references.
type FuncDecl[Meta any] struct {
	Node[Meta]
	Name       string
	Params     []Param[Meta]
	ReturnType TypeExpr[Meta] // nil if unannotated
	Body       Expr[Meta]
}

func (FuncDecl[Meta]) isStmt() {}

// ExprStmt lifts a bare expression to statement position.
type ExprStmt[Meta any] struct {
	Node[Meta]
	Expr Expr[Meta]
}

func (ExprStmt[Meta]) isStmt() {}
