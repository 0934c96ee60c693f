// Package main hosts the garland CLI entrypoint and command graph.
//
// The Cobra-based command tree covers the full dataset lifecycle: rebuilding
// from the registry snapshot, ingesting pending editions, dry-running the
// matcher, prefetching event pages, exporting CSV, and serving the read API.
// It centralizes configuration resolution, logging setup, and write locking
// so subcommands can focus on user experience instead of wiring.
package main
