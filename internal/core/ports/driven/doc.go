// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the launcher to function:
//
//   - Discoverer: Resolves a hosting domain to a protocol endpoint
//   - ClientFactory: Builds a PublishAPI for a discovered endpoint
//   - PublishAPI: The suggest/bundle/missing/finalize/teams exchange
//
// # Optional Interfaces
//
// These can be nil - the launcher degrades gracefully:
//
//   - TaskRunner: Runs the project's build task. Without it, projects
//     declaring a build task fail before any network activity.
//   - TeamResolver: Interactive team selection. Without it, team-required
//     destinations fail with a fixed explanatory message.
//   - HistoryStore: Publish attempt persistence. Without it, attempts are
//     simply not recorded.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
