// Package version exposes the application version string.
package version

// Version is overridden at build time via -ldflags.
var Version = "dev"
