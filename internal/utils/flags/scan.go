package flags

import "github.com/spf13/cobra"

const (
	// DefaultRootFlagName exposes the shared repository root flag name.
	DefaultRootFlagName = "root"
	// DefaultRootFlagUsage describes the shared repository root flag purpose.
	DefaultRootFlagUsage = "Directories to scan for repositories (repeatable)"
	// DepthFlagName exposes the shared scan depth flag name.
	DepthFlagName = "depth"
	// DepthFlagUsage describes the shared scan depth flag purpose.
	DepthFlagUsage = "Directory levels to descend below each root (1 scans immediate children only)"
)

// ScanFlagValues stores repository scan flag values.
type ScanFlagValues struct {
	Roots []string
	Depth int
}

// BindScanFlags attaches repository root and depth flags to the provided command.
func BindScanFlags(command *cobra.Command, defaults ScanFlagValues) *ScanFlagValues {
	values := ScanFlagValues{Roots: append([]string{}, defaults.Roots...), Depth: defaults.Depth}
	if command == nil {
		return &values
	}

	flagSet := command.Flags()
	if flagSet.Lookup(DefaultRootFlagName) == nil {
		flagSet.StringSliceVar(&values.Roots, DefaultRootFlagName, values.Roots, DefaultRootFlagUsage)
	}
	if flagSet.Lookup(DepthFlagName) == nil {
		flagSet.IntVar(&values.Depth, DepthFlagName, values.Depth, DepthFlagUsage)
	}
	return &values
}

// ResolveRoots selects scan roots: positional arguments first, then the root flag, then configured roots, then fallback.
func ResolveRoots(positionalRoots []string, flagRoots []string, configuredRoots []string, fallbackRoot string) []string {
	for _, candidateRoots := range [][]string{positionalRoots, flagRoots, configuredRoots} {
		if len(candidateRoots) > 0 {
			return append([]string{}, candidateRoots...)
		}
	}
	return []string{fallbackRoot}
}
