package version

// Version is the release version, overridable at build time with
// -ldflags "-X github.com/dgallion1/docdigest/internal/version.Version=...".
var Version = "dev"
