// Package domain defines the core business entities for Pagelift.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Bundle: The hashed tree representation of a directory
//   - ContentTable: Hash-to-bytes side table for missing-part uploads
//   - Site: A named publication target on a hosting service
//   - LaunchStep: One logical phase of a publish attempt
//   - TeamSelection: The closed outcome set of the interactive team prompt
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
