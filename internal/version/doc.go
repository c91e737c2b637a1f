// Package version exposes build metadata of the bowl binary.
//
// Version, Commit and BuildTime are injected with -ldflags at release time.
package version
