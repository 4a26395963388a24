package defaults

import (
	"os"
	"path/filepath"

	e "github.com/pkg/errors"
	"github.com/sahib/config"
)

// CurrentVersion is the current version of desfile's config
const CurrentVersion = 0

// Defaults is the default validation for desfile
var Defaults = DefaultsV0

// OpenMigratedConfig takes the config.yml at path and loads it.
// If required, it also migrates the config structure to the newest
// version - desfile can always rely on the latest config keys to be present.
func OpenMigratedConfig(path string) (*config.Config, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, e.Wrap(err, "failed to open config")
	}

	defer fd.Close()

	// Add here any migrations with mgr.Add if needed.
	mgr := config.NewMigrater(CurrentVersion, config.StrictnessPanic)
	mgr.Add(0, nil, DefaultsV0)

	cfg, err := mgr.Migrate(config.NewYamlDecoder(fd))
	if err != nil {
		return nil, e.Wrap(err, "failed to migrate")
	}

	return cfg, nil
}

// OpenConfig works like OpenMigratedConfig, but a config that does not
// exist yet is not an error. In that case a config with only default
// values is returned.
func OpenConfig(path string) (*config.Config, error) {
	cfg, err := OpenMigratedConfig(path)
	if err == nil {
		return cfg, nil
	}

	if !os.IsNotExist(e.Cause(err)) {
		return nil, err
	}

	return config.Open(nil, Defaults, config.StrictnessPanic)
}

// SaveConfig writes `cfg` as YAML to `path`.
// Missing parent directories are created.
func SaveConfig(cfg *config.Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return e.Wrap(err, "failed to create config dir")
	}

	fd, err := os.OpenFile(path, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return e.Wrapf(err, "failed to write to config location %s", path)
	}

	defer fd.Close()

	if err := cfg.Save(config.NewYamlEncoder(fd)); err != nil {
		return e.Wrap(err, "failed to serialize config")
	}

	return nil
}
