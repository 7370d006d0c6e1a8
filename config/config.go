// Package config loads service settings. Defaults are overlaid by an optional
// YAML file; the CLI then applies environment variables and flags on top.
package config

import (
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"recognition.dev/cheers/view"
)

type Config struct {
	Port int `yaml:"port"`
	// UploadOrigin is the scheme and host of the upload endpoint.
	UploadOrigin string `yaml:"uploadOrigin"`
	// Location is sent as the upload's metadata.location.
	Location string `yaml:"location"`
	// Title is printed in the card header.
	Title       string   `yaml:"title"`
	Backgrounds []string `yaml:"backgrounds"`
	// AssetsDir holds the background images and is served at /static/.
	AssetsDir string `yaml:"assetsDir"`
	// ViewTTL is how long an untouched form view is kept in memory.
	ViewTTL time.Duration `yaml:"viewTTL"`
}

func Default() Config {
	return Config{
		Port:         7002,
		UploadOrigin: "http://localhost:3000",
		Location:     "Auburn Hills",
		Title:        "Auburn Hills ATL",
		Backgrounds:  append([]string(nil), view.DefaultBackgrounds...),
		AssetsDir:    "public",
		ViewTTL:      2 * time.Hour,
	}
}

// Load returns Default overlaid with the YAML file at path. An empty path
// returns Default.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "could not read config")
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Config{}, errors.Wrapf(err, "could not parse %s", path)
	}
	return c, nil
}

// LoadDotEnv loads environment variables from the given files, or from .env
// when none are given. Missing files are not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	return godotenv.Load(present...)
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return errors.Errorf("invalid port %d", c.Port)
	}
	u, err := url.Parse(c.UploadOrigin)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.Errorf("invalid upload origin %q", c.UploadOrigin)
	}
	if c.Location == "" {
		return errors.New("location must not be empty")
	}
	if c.ViewTTL <= 0 {
		return errors.Errorf("invalid view TTL %s", c.ViewTTL)
	}
	return nil
}
