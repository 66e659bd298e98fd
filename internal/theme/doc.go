// Package theme implements SchoolDesk's color theme pipeline.
//
// A theme is a Mapping from the 26 fixed color tokens to CSS color strings.
// The Controller resolves the active theme local-first: the SQLite-backed
// LocalStore, then an optional Remote (another SchoolDesk instance reached
// over HTTP), then the built-in Default. Whatever wins is pushed through the
// Applier onto a StyleSink as CSS custom properties.
package theme
