package settings

import (
	"context"
	"path/filepath"

	"github.com/jmgilman/go/stridepack/internal/guard"
	"github.com/jmgilman/go/stridepack/internal/validate"
)

// MaxRecentProjects caps Settings.RecentProjects.
const MaxRecentProjects = 10

// Settings are the persisted user preferences.
type Settings struct {
	// DefaultRegistry is the package source offered for new packages.
	DefaultRegistry string `json:"defaultRegistry"`
	// DefaultVersion is the version offered for new packages.
	DefaultVersion string `json:"defaultVersion"`
	// OutputDirectory is where packages were last written.
	OutputDirectory string `json:"outputDirectory,omitempty"`
	// RecentProjects holds project roots, most recent first.
	RecentProjects []string `json:"recentProjects,omitempty"`
}

// Defaults returns the settings used when nothing has been saved.
func (s *Store) Defaults() Settings {
	return Settings{
		DefaultRegistry: s.cfg.DefaultRegistry,
		DefaultVersion:  s.cfg.DefaultVersion,
		RecentProjects:  []string{},
	}
}

// LoadSettings returns the saved settings, or Defaults if none are saved
// or the saved file is invalid.
func (s *Store) LoadSettings() Settings {
	return guard.Run(s.logger, "load_settings", s.Defaults(), func() (Settings, error) {
		path := s.settingsPath()
		data, err := s.read(path)
		if err != nil {
			return Settings{}, err
		}

		var out Settings
		if err := s.decode(context.Background(), s.settingsSchema, data, path, &out); err != nil {
			return Settings{}, err
		}
		if out.RecentProjects == nil {
			out.RecentProjects = []string{}
		}
		return out, nil
	})
}

// SaveSettings validates and writes settings. It returns false if the
// settings do not satisfy the schema or cannot be written.
func (s *Store) SaveSettings(settings Settings) bool {
	return guard.Run(s.logger, "save_settings", false, func() (bool, error) {
		path := s.settingsPath()
		data, err := s.encode(context.Background(), s.settingsSchema, settings)
		if err != nil {
			return false, err
		}
		if err := s.write(path, data); err != nil {
			return false, err
		}
		s.logger.WithPath(path).Info("settings saved")
		return true, nil
	})
}

// AddRecentProject returns a copy of settings with projectPath moved to
// the front of RecentProjects. Entries are compared in normalized form and
// the list is capped at MaxRecentProjects. An empty or invalid projectPath
// leaves the list unchanged. Nothing is saved.
func (s *Store) AddRecentProject(settings Settings, projectPath string) Settings {
	out := settings
	out.RecentProjects = make([]string, 0, MaxRecentProjects)

	if err := validate.Path(projectPath); err != nil {
		out.RecentProjects = append(out.RecentProjects, settings.RecentProjects...)
		return out
	}
	normalized := s.paths.Normalize(projectPath)

	out.RecentProjects = append(out.RecentProjects, normalized)
	for _, p := range settings.RecentProjects {
		if len(out.RecentProjects) == MaxRecentProjects {
			break
		}
		if s.paths.Normalize(p) == normalized {
			continue
		}
		out.RecentProjects = append(out.RecentProjects, p)
	}
	return out
}

func (s *Store) settingsPath() string {
	return filepath.Join(s.dir, settingsFile)
}
