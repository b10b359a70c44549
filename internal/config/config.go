// Package config loads the service configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator"
	"gopkg.in/yaml.v3"
)

type ServiceConfig struct {
	Port           int      `yaml:"port" validate:"gte=1,lte=65535"`
	ModelPath      string   `yaml:"modelPath" validate:"required"`
	MetadataPath   string   `yaml:"metadataPath" validate:"required"`
	MaxUploadMB    int64    `yaml:"maxUploadMB" validate:"gte=1"`
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

const (
	defaultPort        = 8080
	defaultMaxUploadMB = 10
)

// Path resolves the config file location: CONFIG_PATH if set, otherwise
// config.yaml in the working directory.
func Path() string {
	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		return configPath
	}

	cwd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return filepath.Join(cwd, "config.yaml")
}

// LoadConfig loads and validates configuration from the specified YAML file.
func LoadConfig(configPath string) (*ServiceConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	config := &ServiceConfig{
		Port:           defaultPort,
		MaxUploadMB:    defaultMaxUploadMB,
		AllowedOrigins: []string{"*"},
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", configPath, err)
	}

	return config, nil
}
