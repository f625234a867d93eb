// Package version holds the current release version string.
package version

// Current is the version reported by cflrec's -v/--version flag.
const Current = "0.1.0"
