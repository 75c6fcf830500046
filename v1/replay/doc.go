// Package replay runs short operation scripts against a cache and records a
// transcript of every result and discard notice. Each run is traced with
// OpenTelemetry and counted in the metrics package.
//
// Scripts hold one operation per line or per ";" separated segment:
//
//	put A Hello
//	get A
//	dump
//
// The literal nil stands for an absent key or value.
package replay
