package version

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/icarus-vfx/icshared/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/icarus-vfx/icshared/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/icarus-vfx/icshared/internal/version.Date={{.Date}}
)
