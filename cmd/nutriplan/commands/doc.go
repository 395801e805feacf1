// Package commands defines the nutriplan CLI and wires dependencies for subcommands.
//
// Commands
//
//   - generate         Build a one-day meal plan and optionally save it
//   - serve            Run the JSON API (and the Telegram webhook when configured)
//   - plans list       List the saved plans of a user
//   - plans show       Print a saved plan
//   - plans delete     Delete a saved plan
//   - plans export     Write a user's plans to the JSON archive
//   - import-meal      Clip a recipe page into the catalog
//   - metrics          Print daily selection usage and system health
//   - metrics-cleanup  Remove old selection metrics
//
// # Implementation
//
// The root command loads the environment configuration, builds the logger and
// opens the SQLite database before any subcommand runs, so handlers share one
// application service. The database and the nutrition cache are flushed after
// the subcommand returns.
package commands
