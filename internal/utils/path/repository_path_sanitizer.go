package pathutils

import (
	"runtime"
	"strings"
)

const windowsOperatingSystemConstant = "windows"

// RepositoryPathSanitizer normalizes scan root inputs consistently across commands.
type RepositoryPathSanitizer struct {
	normalizer *Normalizer
}

// NewRepositoryPathSanitizer constructs a RepositoryPathSanitizer backed by the process environment.
func NewRepositoryPathSanitizer() *RepositoryPathSanitizer {
	return NewRepositoryPathSanitizerWithNormalizer(nil)
}

// NewRepositoryPathSanitizerWithNormalizer constructs a RepositoryPathSanitizer using the provided normalizer.
func NewRepositoryPathSanitizerWithNormalizer(normalizer *Normalizer) *RepositoryPathSanitizer {
	if normalizer == nil {
		normalizer = NewNormalizer()
	}
	return &RepositoryPathSanitizer{normalizer: normalizer}
}

// Sanitize trims whitespace, drops blank entries, normalizes each path, and removes duplicates.
// The first normalization failure is returned.
func (sanitizer *RepositoryPathSanitizer) Sanitize(candidatePaths []string) ([]string, error) {
	sanitizedPaths := make([]string, 0, len(candidatePaths))
	seenPaths := make(map[string]struct{}, len(candidatePaths))

	for candidateIndex := range candidatePaths {
		trimmedCandidate := strings.TrimSpace(candidatePaths[candidateIndex])
		if len(trimmedCandidate) == 0 {
			continue
		}

		normalizedPath, normalizeError := sanitizer.normalizer.Normalize(trimmedCandidate)
		if normalizeError != nil {
			return nil, normalizeError
		}

		comparison := comparisonPath(normalizedPath)
		if _, alreadySeen := seenPaths[comparison]; alreadySeen {
			continue
		}
		seenPaths[comparison] = struct{}{}
		sanitizedPaths = append(sanitizedPaths, normalizedPath)
	}

	if len(sanitizedPaths) == 0 {
		return nil, nil
	}

	return sanitizedPaths, nil
}

func comparisonPath(path string) string {
	if runtime.GOOS == windowsOperatingSystemConstant {
		return strings.ToLower(path)
	}
	return path
}
