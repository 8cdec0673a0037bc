package types

// Version is the application version, overridden at build time via ldflags
var Version = "v0.0.1"

// ServiceName is used in health responses and log attributes
const ServiceName = "scrysheet"
