// Package validate provides host path validation and segment-wise containment.
// The path and file services both use it to reject malformed input before it
// reaches the filesystem and to decide whether one path lies inside another.
package validate

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/jmgilman/go/stridepack/errors"
)

// hostWindows selects the Windows rule set for the exported functions.
const hostWindows = runtime.GOOS == "windows"

// Path validates a host path for structural problems.
// It rejects empty and whitespace-only paths, NUL bytes and control
// characters, and on Windows the characters that NTFS forbids in names.
// Returns nil if the path can be handed to the filesystem.
func Path(path string) error {
	return checkPath(path, hostWindows)
}

// checkPath is Path with an explicit rule set.
func checkPath(path string, windows bool) error {
	if path == "" {
		return fmt.Errorf("empty path")
	}

	if isWhitespaceOnly(path) {
		return fmt.Errorf("empty path")
	}

	return detectProblematicCharacters(path, windows)
}

// detectProblematicCharacters checks for characters the host cannot store
// in a path.
func detectProblematicCharacters(path string, windows bool) error {
	for i, r := range path {
		if r == 0 {
			return fmt.Errorf("NUL byte detected in path: %q", path)
		}
		if r < 32 || r == 127 {
			return fmt.Errorf("control character detected in path: %q (U+%04X)", path, r)
		}
		if !windows {
			continue
		}
		switch r {
		case '<', '>', '"', '|', '?', '*':
			return fmt.Errorf("invalid character %q in path: %q", r, path)
		case ':':
			// Allowed only as the drive separator ("C:").
			if i != 1 || !isDriveLetter(path[0]) {
				return fmt.Errorf("invalid character %q in path: %q", r, path)
			}
		}
	}
	return nil
}

// Canonical returns the absolute, cleaned form of path in host syntax.
// Both '/' and '\' are treated as separators.
func Canonical(path string) (string, error) {
	if err := Path(path); err != nil {
		return "", err
	}

	p := strings.ReplaceAll(path, "\\", "/")
	abs, err := filepath.Abs(filepath.FromSlash(p))
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	return abs, nil
}

// Segments splits a canonical path into its volume and name segments.
// The root directory yields no name segments.
func Segments(canonical string) (string, []string) {
	vol := filepath.VolumeName(canonical)
	rest := filepath.ToSlash(canonical[len(vol):])

	var segs []string
	for _, s := range strings.Split(rest, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return vol, segs
}

// Within reports whether target equals root or lies below it, comparing
// canonical segment sequences. Name comparison is case-insensitive on
// Windows. A sibling that merely shares a name prefix with root is never
// within it.
func Within(root, target string) bool {
	return within(root, target, hostWindows)
}

// within is Within with an explicit rule set.
func within(root, target string, windows bool) bool {
	rootVol, rootSegs := Segments(root)
	targetVol, targetSegs := Segments(target)

	if !sameSegment(rootVol, targetVol, windows) {
		return false
	}
	if len(targetSegs) < len(rootSegs) {
		return false
	}
	for i, seg := range rootSegs {
		if !sameSegment(seg, targetSegs[i], windows) {
			return false
		}
	}
	return true
}

func sameSegment(a, b string, windows bool) bool {
	if windows {
		return strings.EqualFold(a, b)
	}
	return a == b
}

func isDriveLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// isWhitespaceOnly checks if a path contains only whitespace characters.
func isWhitespaceOnly(path string) bool {
	for _, r := range path {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}

// Resolve validates path and returns its canonical form. The error carries
// CodeInvalidInput for an empty path and CodeInvalidPath for one the host
// cannot represent.
func Resolve(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.WithContext(errors.New(errors.CodeInvalidInput, "empty path"), "path", path)
	}

	canonical, err := Canonical(path)
	if err != nil {
		return "", errors.WrapWithContext(err, errors.CodeInvalidPath, "invalid path", map[string]interface{}{
			"path": path,
		})
	}
	return canonical, nil
}
