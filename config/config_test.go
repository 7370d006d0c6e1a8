package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	assert := assert.New(t)
	c := Default()
	assert.NoError(c.Validate())
	assert.Equal("Auburn Hills", c.Location)
	assert.Equal([]string{"/atl-background-red.jpg", "/atl-background-green.jpg", "/atl-background.jpg"}, c.Backgrounds)
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	p := filepath.Join(dir, "cheers.yaml")
	assert.NoError(os.WriteFile(p, []byte(`
uploadOrigin: https://uploads.example.com
location: Troy
backgrounds:
  - /troy.jpg
viewTTL: 30m
`), 0644))

	c, err := Load(p)
	assert.NoError(err)
	assert.Equal("https://uploads.example.com", c.UploadOrigin)
	assert.Equal("Troy", c.Location)
	assert.Equal([]string{"/troy.jpg"}, c.Backgrounds)
	assert.Equal(30*time.Minute, c.ViewTTL)
	// Untouched keys keep their defaults.
	assert.Equal(Default().Port, c.Port)
	assert.Equal(Default().Title, c.Title)

	c, err = Load("")
	assert.NoError(err)
	assert.Equal(Default(), c)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(err)

	assert.NoError(os.WriteFile(p, []byte("port: [1"), 0644))
	_, err = Load(p)
	assert.Error(err)
}

func TestValidate(t *testing.T) {
	assert := assert.New(t)
	tc := []struct {
		mod  func(*Config)
		want string
	}{
		{func(c *Config) { c.Port = 0 }, "invalid port 0"},
		{func(c *Config) { c.UploadOrigin = "localhost:3000" }, `invalid upload origin "localhost:3000"`},
		{func(c *Config) { c.UploadOrigin = "ftp://x" }, `invalid upload origin "ftp://x"`},
		{func(c *Config) { c.Location = "" }, "location must not be empty"},
		{func(c *Config) { c.ViewTTL = 0 }, "invalid view TTL 0s"},
	}
	for _, t := range tc {
		c := Default()
		t.mod(&c)
		assert.EqualError(c.Validate(), t.want)
	}
}

func TestLoadDotEnv(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	assert.NoError(LoadDotEnv(filepath.Join(dir, "missing.env")))

	p := filepath.Join(dir, "test.env")
	assert.NoError(os.WriteFile(p, []byte("CHEERS_TEST_LOCATION=Novi\n"), 0644))
	defer os.Unsetenv("CHEERS_TEST_LOCATION")
	assert.NoError(LoadDotEnv(p))
	assert.Equal("Novi", os.Getenv("CHEERS_TEST_LOCATION"))
}
