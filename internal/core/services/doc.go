// Package services implements the core publish logic. Services implement
// the driving ports and depend only on domain types and driven ports.
package services
