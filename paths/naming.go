package paths

import (
	"strings"
)

// SanitizeFileName replaces characters that are not allowed in file names
// on any supported platform with '_', then trims surrounding spaces and
// trailing dots. The result may be empty.
func SanitizeFileName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r < 32 || r == 127:
			b.WriteRune('_')
		case strings.ContainsRune(`<>:"/\|?*`, r):
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimRight(strings.TrimSpace(b.String()), ". ")
}

// PackageFileName returns "{name}-{version}{ext}" where both components are
// sanitized, dots in the version become '_' and ext is the configured
// package extension. Empty components stay empty, so the result is always
// a usable file name:
//
//	PackageFileName("TestPackage", "1.0.0") // "TestPackage-1_0_0.stridepackage"
func (s *Service) PackageFileName(name, version string) string {
	version = strings.ReplaceAll(version, ".", "_")
	return SanitizeFileName(name) + "-" + SanitizeFileName(version) + s.cfg.PackageExtension
}
