// Package host loads a Go project and indexes its component declarations:
// every component.Define call site, the host struct type it registers, and
// the inline template or template URL it carries. The index and the type
// oracle built here are the real implementations of the checker package's
// collaborator interfaces.
package host

// Config controls which call sites count as component declarations. The
// defaults match the component package shipped with this module; projects
// that vendor or alias the registration helper can override them.
type Config struct {
	// DefinePackage is the package identifier the registration helper is
	// called through.
	DefinePackage string
	// DefineFunc is the name of the registration helper.
	DefineFunc string
}

// DefaultConfig returns the configuration matching the standard
// component.Define helper.
func DefaultConfig() Config {
	return Config{
		DefinePackage: "component",
		DefineFunc:    "Define",
	}
}
