package settings

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/jmgilman/go/stridepack/cue"
	"github.com/jmgilman/go/stridepack/errors"
	"github.com/jmgilman/go/stridepack/files"
	"github.com/jmgilman/go/stridepack/internal/guard"
	"github.com/jmgilman/go/stridepack/paths"
)

// Preset is a named set of export options.
type Preset struct {
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	Version         string   `json:"version"`
	Registry        string   `json:"registry,omitempty"`
	OutputDirectory string   `json:"outputDirectory,omitempty"`
	Include         []string `json:"include,omitempty"`
	Exclude         []string `json:"exclude,omitempty"`
}

// Matches reports whether relPath, relative to the project root, is
// selected by the preset: it matches at least one include pattern and no
// exclude pattern. Patterns support "**" for any number of directories.
// A preset without include patterns selects everything.
func (p Preset) Matches(relPath string) bool {
	name := filepath.ToSlash(relPath)

	included := len(p.Include) == 0
	for _, pattern := range p.Include {
		if ok, _ := doublestar.Match(pattern, name); ok {
			included = true
			break
		}
	}
	if !included {
		return false
	}

	for _, pattern := range p.Exclude {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return false
		}
	}
	return true
}

// validatePatterns rejects include or exclude patterns doublestar cannot
// parse.
func validatePatterns(p Preset) error {
	for _, list := range [][]string{p.Include, p.Exclude} {
		for _, pattern := range list {
			if !doublestar.ValidatePattern(pattern) {
				return errors.WithContextMap(errors.New(errors.CodeInvalidInput, "invalid preset pattern"), map[string]interface{}{
					"name":    p.Name,
					"pattern": pattern,
				})
			}
		}
	}
	return nil
}

// SavePreset validates and writes preset, replacing any preset with the
// same file name. Names are sanitized for the file system, so two names
// that sanitize alike share a file.
func (s *Store) SavePreset(preset Preset) bool {
	return guard.Run(s.logger, "save_preset", false, func() (bool, error) {
		if err := s.savePreset(context.Background(), preset); err != nil {
			return false, err
		}
		return true, nil
	})
}

// LoadPreset returns the preset stored under name. The boolean is false if
// it does not exist or no longer satisfies the schema.
func (s *Store) LoadPreset(name string) (Preset, bool) {
	type result struct {
		p  Preset
		ok bool
	}

	r := guard.Run(s.logger, "load_preset", result{}, func() (result, error) {
		path, err := s.presetPath(name)
		if err != nil {
			return result{}, err
		}
		p, err := s.loadPresetFile(context.Background(), path)
		if err != nil {
			return result{}, err
		}
		return result{p: p, ok: true}, nil
	})
	return r.p, r.ok
}

// DeletePreset removes the preset stored under name.
func (s *Store) DeletePreset(name string) bool {
	return guard.Run(s.logger, "delete_preset", false, func() (bool, error) {
		path, err := s.presetPath(name)
		if err != nil {
			return false, err
		}
		file := presetFile(path)
		info, err := s.presetFS.Stat(file)
		if err != nil {
			return false, errors.WithContextMap(errors.WrapFS(err, "preset not found"), map[string]interface{}{"name": name, "path": path})
		}
		if !info.Mode().IsRegular() {
			return false, errors.WithContext(errors.New(errors.CodeNotAFile, "preset is not a file"), "path", path)
		}
		if err := s.presetFS.Remove(file); err != nil {
			return false, errors.WithContext(errors.WrapFS(err, "failed to delete preset"), "path", path)
		}
		return true, nil
	})
}

// ListPresets returns the names of all valid presets in sorted order.
// Files that fail validation are skipped.
func (s *Store) ListPresets() []string {
	return guard.Run(s.logger, "list_presets", []string{}, func() ([]string, error) {
		ctx := context.Background()
		names := []string{}
		for _, path := range s.files.ListFiles(s.presets, files.WithPattern("*"+presetExt)) {
			p, err := s.loadPresetFile(ctx, path)
			if err != nil {
				s.logger.WithPath(path).Debug("skipping preset", "error", err)
				continue
			}
			names = append(names, p.Name)
		}
		sort.Strings(names)
		return names, nil
	})
}

// ExportPresetYAML renders the named preset as a YAML document, or ""
// if it cannot be loaded.
func (s *Store) ExportPresetYAML(name string) string {
	return guard.Run(s.logger, "export_preset", "", func() (string, error) {
		ctx := context.Background()
		path, err := s.presetPath(name)
		if err != nil {
			return "", err
		}
		p, err := s.loadPresetFile(ctx, path)
		if err != nil {
			return "", err
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		val, err := s.loader.Encode(ctx, p)
		if err != nil {
			return "", err
		}
		unified, err := cue.Validate(ctx, s.presetSchema, val)
		if err != nil {
			return "", err
		}
		out, err := cue.EncodeYAML(ctx, unified)
		if err != nil {
			return "", err
		}
		return string(out), nil
	})
}

// ImportPresetYAML validates a YAML preset document and saves it.
func (s *Store) ImportPresetYAML(data []byte) bool {
	return guard.Run(s.logger, "import_preset", false, func() (bool, error) {
		if len(strings.TrimSpace(string(data))) == 0 {
			return false, errors.New(errors.CodeInvalidInput, "empty preset document")
		}

		ctx := context.Background()
		var p Preset
		if err := s.decodeYAML(ctx, data, &p); err != nil {
			return false, err
		}
		if err := s.savePreset(ctx, p); err != nil {
			return false, err
		}
		return true, nil
	})
}

func (s *Store) decodeYAML(ctx context.Context, data []byte, target interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	val, err := s.loader.LoadYAML(ctx, data, "preset.yaml")
	if err != nil {
		return err
	}
	return s.decodeValue(ctx, s.presetSchema, val, target)
}

func (s *Store) savePreset(ctx context.Context, p Preset) error {
	path, err := s.presetPath(p.Name)
	if err != nil {
		return err
	}
	if err := validatePatterns(p); err != nil {
		return err
	}
	data, err := s.encode(ctx, s.presetSchema, p)
	if err != nil {
		return errors.WithContext(err, "name", p.Name)
	}
	if err := s.presetFS.WriteFile(presetFile(path), data, 0o644); err != nil {
		return errors.WithContext(errors.WrapFS(err, "failed to write preset"), "path", path)
	}
	return nil
}

// loadPresetFile reads the preset at path, a file directly inside the
// presets directory.
func (s *Store) loadPresetFile(ctx context.Context, path string) (Preset, error) {
	data, err := s.presetFS.ReadFile(presetFile(path))
	if err != nil {
		return Preset{}, errors.WithContext(errors.WrapFS(err, "failed to read preset"), "path", path)
	}
	var p Preset
	if err := s.decode(ctx, s.presetSchema, data, path, &p); err != nil {
		return Preset{}, err
	}
	return p, nil
}

// presetFile returns the name of path within the presets filesystem.
func presetFile(path string) string {
	return "/" + filepath.Base(path)
}

// presetPath maps a preset name to its file and checks that the file lies
// inside the presets directory.
func (s *Store) presetPath(name string) (string, error) {
	file := paths.SanitizeFileName(name)
	if file == "" {
		return "", errors.WithContext(errors.New(errors.CodeInvalidInput, "invalid preset name"), "name", name)
	}

	path := filepath.Join(s.presets, file+presetExt)
	if !s.paths.IsWithin(path, s.presets) {
		return "", errors.WithContextMap(errors.New(errors.CodeOutsideBoundary, "preset path escapes presets directory"), map[string]interface{}{
			"name": name,
			"path": path,
		})
	}
	return path, nil
}
