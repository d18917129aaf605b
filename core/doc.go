// Package core holds the binding resolution contracts: session parameters,
// the binding-type enumeration, the class registry, the per-session
// collaborator resolver and the resolution error taxonomy. Transport, codec
// and binding implementations depend on this package; core depends on none
// of them.
package core
