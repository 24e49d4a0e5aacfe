package main

import (
	"os"

	"gopkg.in/yaml.v2"
)

const projectFile = "minic.yaml"

// projectConfig is the optional per-directory project file. Flags given
// on the command line win over it.
type projectConfig struct {
	Package  string `yaml:"Package"`
	Optimize *bool  `yaml:"Optimize,omitempty"`
	Output   string `yaml:"Output,omitempty"`
}

func loadProject() (projectConfig, bool) {
	var cfg projectConfig
	data, err := os.ReadFile(projectFile)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	return cfg, true
}

func writeProject(cfg projectConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(projectFile, data, 0o644)
}
