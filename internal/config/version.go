package config

// Version is the motif binary version.
// Set at build time via: -ldflags "-X github.com/persistorai/motif/internal/config.Version=<tag>"
var Version = "dev"
