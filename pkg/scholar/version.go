// Package scholar holds build-wide identifiers for the scholar module.
package scholar

// Version is the release version reported by the CLI.
const Version = "0.1.0"

// ModulePath is the Go module path of this repository.
const ModulePath = "github.com/mesh-intelligence/scholar"
