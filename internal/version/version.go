package version

// Version is the CLI version string.
const Version = "1.0.0"
