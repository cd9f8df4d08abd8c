// Package octconnect provides the command-line interface for octconnect.
// It wires the catalog, property extraction and extras packages to cobra
// subcommands (scan, props, bake, browse, ...).
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/octave-engine/octconnect/cmd/octconnect"
//	func main() { octconnect.Execute() }
package octconnect
