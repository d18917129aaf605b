// Package binding selects and constructs protocol bindings from session
// parameters. The binding-type enumeration is stable; only the browser
// binding is wired by default and the remaining variants fail with a
// not-implemented error naming the requested value.
package binding
