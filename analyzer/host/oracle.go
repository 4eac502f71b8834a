package host

import (
	"go/types"

	"github.com/abiiranathan/go-component-lsp/analyzer/checker"
)

// Sym wraps a go/types type as a checker.TypeSym.
type Sym struct {
	t types.Type
}

// newSym wraps t, unwrapping one level of pointer so a component registered
// as &UserCard{} reads the same as UserCard{}.
func newSym(t types.Type) Sym {
	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}
	return Sym{t: t}
}

// TypeName renders the type without package qualification, the way it reads
// at its declaration site.
func (s Sym) TypeName() string {
	return types.TypeString(s.t, func(*types.Package) string { return "" })
}

// Oracle answers member and element queries against go/types. It implements
// checker.Oracle for symbols produced by this package; foreign TypeSym
// implementations resolve nothing.
type Oracle struct{}

// NewOracle returns the go/types-backed oracle.
func NewOracle() Oracle {
	return Oracle{}
}

// Member resolves a field or method on recv, including promoted members of
// embedded structs. Unexported members resolve too: the template lives in
// the same package as its host class.
func (Oracle) Member(recv checker.TypeSym, name string) (checker.TypeSym, bool) {
	s, ok := recv.(Sym)
	if !ok {
		return nil, false
	}

	pkg := declaringPackage(s.t)
	obj, _, _ := types.LookupFieldOrMethod(s.t, true, pkg, name)
	if obj == nil {
		return nil, false
	}

	switch o := obj.(type) {
	case *types.Var:
		return newSym(o.Type()), true
	case *types.Func:
		return newSym(o.Type()), true
	default:
		return nil, false
	}
}

// Elem returns the element type of a slice, array, or map.
func (Oracle) Elem(coll checker.TypeSym) (checker.TypeSym, bool) {
	s, ok := coll.(Sym)
	if !ok {
		return nil, false
	}

	switch u := s.t.Underlying().(type) {
	case *types.Slice:
		return newSym(u.Elem()), true
	case *types.Array:
		return newSym(u.Elem()), true
	case *types.Map:
		return newSym(u.Elem()), true
	default:
		return nil, false
	}
}

// declaringPackage finds the package a named type was declared in, needed by
// LookupFieldOrMethod to see unexported members.
func declaringPackage(t types.Type) *types.Package {
	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}
	if named, ok := t.(*types.Named); ok {
		if obj := named.Obj(); obj != nil {
			return obj.Pkg()
		}
	}
	return nil
}
