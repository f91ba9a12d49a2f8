// Package file provides TOML-backed configuration: the per-project
// pagelift.toml describing what to publish and where, and the per-user
// credentials file holding bearer tokens by hosting service.
package file
