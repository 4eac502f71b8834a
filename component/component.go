// Package component declares UI components: a host struct paired with the
// markup template that renders it. Declarations are plain values so the
// static analyzer can index them from source without executing anything.
package component

// Definition pairs a host type with its template. Exactly one of Template
// and TemplateURL should be set; Template may be the empty string for a
// component that intentionally renders nothing.
type Definition struct {
	// Host is an instance of the component's host struct. Template
	// expressions resolve against its type.
	Host any
	// Template is the inline template markup.
	Template string
	// TemplateURL is the path of the template file, relative to the Go file
	// declaring the component.
	TemplateURL string
}

// registry holds every definition registered in this process, in
// registration order.
var registry []Definition

// Define registers a component and returns its definition. The analyzer
// recognizes these call sites statically; at runtime the definition is also
// added to the process registry for rendering.
func Define(d Definition) Definition {
	registry = append(registry, d)
	return d
}

// Registered returns all definitions registered so far.
func Registered() []Definition {
	out := make([]Definition, len(registry))
	copy(out, registry)
	return out
}
