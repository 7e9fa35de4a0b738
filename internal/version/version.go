// Package version holds the tool version shared by all commands.
package version

// Version is overridable at build time via -ldflags "-X ...".
var Version = "0.2.0"
