// Package orchestrator wires the resolver → request builder → validator →
// calculation service → result formatter → renderer pipeline behind a single
// entry point with dependency injection friendly options.
package orchestrator
