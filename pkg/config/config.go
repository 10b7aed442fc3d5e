package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/docker/docker/pkg/homedir"
	"github.com/pkg/errors"

	"github.com/cleanops/registry-cleaner/pkg/util/jsonutil"
)

var (
	initConfigDir = new(sync.Once)
	configDir     string
	homeDir       string
)

const (
	DefaultConfigFileName = "config.json"
	configFileDir         = ".registry-cleaner"
)

// resetConfigDir is used in testing to reset the "configDir" package variable
// and its sync.Once to force re-lookup between tests.
func resetConfigDir() {
	configDir = ""
	initConfigDir = new(sync.Once)
}

func GetHomeDir() string {
	if homeDir == "" {
		homeDir = homedir.Get()
	}
	return homeDir
}

func setConfigDir() {
	if configDir != "" {
		return
	}
	configDir = os.Getenv("REGISTRY_CLEANER_CONFIG")
	if configDir == "" {
		configDir = filepath.Join(GetHomeDir(), configFileDir)
	}
}

func DefaultConfigFilePath() string {
	return filepath.Join(Dir(), DefaultConfigFileName)
}

// Dir returns the directory the configuration file is stored in
func Dir() string {
	initConfigDir.Do(setConfigDir)
	return configDir
}

// SetDir sets the directory the configuration file is stored in
func SetDir(dir string) {
	configDir = filepath.Clean(dir)
}

func New(fn string) *Config {
	return &Config{
		Filename: fn,
	}
}

// LoadFromReader reads the configuration data given and populates the
// receiver object
func (c *Config) LoadFromReader(r io.Reader) error {
	if err := jsonutil.NewDecoder(r).Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// LoadFromReader is a convenience function that creates a Config object from
// a reader
func LoadFromReader(configData io.Reader) (*Config, error) {
	configFile := Config{}
	err := configFile.LoadFromReader(configData)
	return &configFile, err
}

// Load reads the configuration file in the given directory and returns
// its values. A missing file is not an error.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = Dir()
	}

	filename := filepath.Join(configDir, DefaultConfigFileName)
	configFile := New(filename)

	if file, err := os.Open(filename); err == nil {
		defer file.Close()
		err = configFile.LoadFromReader(file)
		if err != nil {
			err = errors.Wrap(err, filename)
		}
		return configFile, err
	} else if !os.IsNotExist(err) {
		// if file is there but we can't stat it for any reason other
		// than it doesn't exist then stop
		return configFile, errors.Wrap(err, filename)
	}

	return configFile, nil
}

// LoadDefaultConfigFile attempts to load the default config file and returns
// an initialized Config struct if none is found.
func LoadDefaultConfigFile(stderr io.Writer) *Config {
	configFile, err := Load(Dir())
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "WARNING: Error loading config file: %v\n", err)
	}
	return configFile
}
