// Package application wires configuration, logging, the sheet planner and
// the HTTP API into a runnable server, keeping cmd/labelsheet focused on
// flag parsing and orchestration.
package application
