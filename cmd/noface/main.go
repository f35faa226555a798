// Package main provides the entry point for the NoFace CLI.
//
// NoFace shows a text file next to its anonymized and re-filled versions,
// with every redacted entity highlighted by type.
//
// Usage:
//
//	noface serve
//	noface anonymize notes.txt
//
// See --help for all available options.
package main

func main() {
	Execute()
}
