// Package version exposes the modkit build version.
package version

// Version is the modkit version string. Release builds override it with
// -ldflags "-X modkit/pkg/version.Version=vX.Y.Z".
var Version = "dev"
