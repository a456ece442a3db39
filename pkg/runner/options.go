// Package runner renders layout scripts across many files.
package runner

import "github.com/yaklabco/fmtwriter/pkg/config"

// Options controls a multi-file run.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Suffixes identify script files. Defaults to DefaultSuffixes().
	Suffixes []string

	// ExcludeGlobs are glob patterns, relative to WorkingDir, for scripts or
	// directories to skip.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means runtime.NumCPU().
	Jobs int

	// Write stores changed output to each script's target.
	Write bool

	// Backup keeps a sidecar copy of a target before it is first overwritten.
	Backup bool

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// DefaultSuffixes returns the file name suffixes of layout scripts.
func DefaultSuffixes() []string {
	return []string{".layout.yaml", ".layout.yml"}
}

func (o Options) effectiveSuffixes() []string {
	if len(o.Suffixes) == 0 {
		return DefaultSuffixes()
	}
	return o.Suffixes
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) effectiveConfig() *config.Config {
	if o.Config == nil {
		return config.NewConfig()
	}
	return o.Config
}
