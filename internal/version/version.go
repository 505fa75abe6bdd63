package version

// Version is overridden at link time with -ldflags "-X tapscore/internal/version.Version=...".
var Version = "dev"
