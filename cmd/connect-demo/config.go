package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type demoConfig struct {
	AppName       string   `yaml:"appName"`
	JWT           string   `yaml:"jwt"`
	Environment   string   `yaml:"environment"`
	Theme         string   `yaml:"theme"`
	MessageOrigin string   `yaml:"messageOrigin"`
	Messages      []string `yaml:"messages"`
}

// loadConfig reads the YAML config at path, or returns the built-in demo
// configuration when no path is given.
func loadConfig(path string) (demoConfig, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return demoConfig{}, fmt.Errorf("os.ReadFile %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return demoConfig{}, fmt.Errorf("yaml.Unmarshal %w", err)
	}
	return cfg, nil
}

func defaultConfig() demoConfig {
	return demoConfig{
		AppName:       "Connect Demo",
		JWT:           "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiJkZW1vLXVzZXIifQ.demo",
		Environment:   "sandbox",
		Theme:         "dark",
		MessageOrigin: "sdk.connect.xyz",
		Messages: []string{
			`{"type":"page-ready","data":{}}`,
			`{"type":"content-ready","data":{}}`,
			`{"type":"event","data":{"eventType":"kyc_started"}}`,
			`{"type":"deposit","data":{"depositId":"dep-123","assetId":"usdc","networkId":"ethereum","amount":"25.00","status":{"value":"processed"}}}`,
			`{"type":"close","data":{}}`,
		},
	}
}
