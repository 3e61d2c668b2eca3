// internal/version/version.go
package version

// Version is stamped by the release process; the default marks dev builds.
var Version = "0.1.0-dev"
