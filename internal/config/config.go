// Package config loads the optional .proofai.yaml project file and resolves
// the effective hub settings from flags, environment, and file.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/proofai/proofai-cli/internal/hub"
)

// FileName is the optional per-project configuration file. Discover looks
// for it in the project directory first, then the user's home directory.
const FileName = ".proofai.yaml"

// Environment variables recognized alongside the config file.
const (
	EnvAPIURL = "PROOFAI_API_URL"
	EnvAPIKey = "PROOFAI_API_KEY"
)

// File represents the contents of a .proofai.yaml file.
type File struct {
	APIURL  string   `yaml:"api_url"`
	APIKey  string   `yaml:"api_key"`
	Exclude []string `yaml:"exclude"`
}

// Settings is the resolved configuration an upload runs with.
type Settings struct {
	APIURL  string
	APIKey  string
	Exclude []string

	// Source names where APIURL came from: flag, env, file, or default.
	Source string
}

// Load reads and parses the configuration at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Expand environment variables in the file
	expandedData := expandEnvInYaml(string(data))

	var file File
	if err := yaml.Unmarshal([]byte(expandedData), &file); err != nil {
		return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
	}

	if err := validateFile(path, &file); err != nil {
		return nil, err
	}

	return &file, nil
}

// Discover returns the nearest config file for a project: the project
// directory is checked first, then the user's home directory. A missing
// file is not an error; (nil, nil) means no configuration exists.
func Discover(projectDir string) (*File, error) {
	candidates := []string{filepath.Join(projectDir, FileName)}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, FileName))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return Load(path)
	}

	return nil, nil
}

// Resolve computes the effective settings for projectDir. flagURL is the
// --api-url flag value and wins when set; after that PROOFAI_API_URL, then
// the config file, then the built-in default. The API key resolves env
// first, then file. File exclude patterns are carried as-is; merging them
// with --exclude flags is the caller's concern.
func Resolve(projectDir, flagURL string) (*Settings, error) {
	file, err := Discover(projectDir)
	if err != nil {
		return nil, err
	}

	settings := &Settings{
		APIURL: hub.DefaultBaseURL,
		Source: "default",
	}

	if file != nil {
		if file.APIURL != "" {
			settings.APIURL = file.APIURL
			settings.Source = "file"
		}
		settings.APIKey = file.APIKey
		settings.Exclude = file.Exclude
	}

	if env := os.Getenv(EnvAPIURL); env != "" {
		settings.APIURL = env
		settings.Source = "env"
	}
	if flagURL != "" {
		settings.APIURL = flagURL
		settings.Source = "flag"
	}

	if env := os.Getenv(EnvAPIKey); env != "" {
		settings.APIKey = env
	}

	return settings, nil
}

// expandEnvInYaml expands environment variables in YAML content
func expandEnvInYaml(content string) string {
	// Process ${VAR} style environment variables
	result := os.Expand(content, func(key string) string {
		return os.Getenv(key)
	})

	return result
}

// validateFile performs basic validation on the configuration
func validateFile(path string, file *File) error {
	if file.APIURL != "" {
		u, err := url.Parse(file.APIURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid api_url in %s: %s, must be an absolute URL", path, file.APIURL)
		}
		switch u.Scheme {
		case "http", "https":
			// Valid values
		default:
			return fmt.Errorf("invalid api_url scheme in %s: %s, must be 'http' or 'https'", path, u.Scheme)
		}
	}

	return nil
}
