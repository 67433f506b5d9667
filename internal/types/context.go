package types

// Context carries inference state across a single run: a lexical scope
// stack of name bindings, a shared fresh-variable counter, and the
// substitution map unification writes into.
type Context struct {
	scopes []map[string]Type
	subst  map[uint64]Type
	next   uint64
}

// NewContext returns a Context with one (module-level) scope open.
func NewContext() *Context {
	return &Context{
		scopes: []map[string]Type{make(map[string]Type)},
		subst:  make(map[uint64]Type),
	}
}

// Push opens a new, innermost lexical scope.
func (c *Context) Push() {
	c.scopes = append(c.scopes, make(map[string]Type))
}

// Pop closes the innermost lexical scope.
func (c *Context) Pop() {
	c.scopes = c.scopes[:len(c.scopes)-1]
}

// Bind introduces name into the innermost scope.
func (c *Context) Bind(name string, t Type) {
	c.scopes[len(c.scopes)-1][name] = t
}

// Lookup searches scopes from innermost to outermost.
func (c *Context) Lookup(name string) (Type, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if t, ok := c.scopes[i][name]; ok {
			return t, true
		}
	}
	return nil, false
}

// Fresh mints a new, globally-unique Infer variable.
func (c *Context) Fresh() Infer {
	id := c.next
	c.next++
	return Infer{ID: id}
}

// Bound returns the type currently substituted for id, if any.
func (c *Context) Bound(id uint64) (Type, bool) {
	t, ok := c.subst[id]
	return t, ok
}

// SetBound records that id now resolves to t.
func (c *Context) SetBound(id uint64, t Type) {
	c.subst[id] = t
}

// Prune follows the substitution chain for t until it reaches an
// unbound Infer variable or a non-Infer type, compacting multi-hop
// chains as it goes (standard HM "find" with path compression).
func (c *Context) Prune(t Type) Type {
	inf, ok := t.(Infer)
	if !ok {
		return t
	}
	bound, ok := c.Bound(inf.ID)
	if !ok {
		return t
	}
	resolved := c.Prune(bound)
	c.SetBound(inf.ID, resolved)
	return resolved
}
