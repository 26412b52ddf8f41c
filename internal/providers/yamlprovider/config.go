package yamlprovider

import (
	"fmt"
	"strings"
)

const (
	ModeDirect   = "direct"
	ModeBase64   = "base64"
	ModeTemplate = "template"
)

// Config declares one provider in YAML. Markers match the server field of
// an embed; host fragments match inside the raw reference. Decode mode
// covers the simple format families — anything needing real logic gets a
// native provider instead.
type Config struct {
	Key           string   `yaml:"key"`
	Name          string   `yaml:"name"`
	Enabled       *bool    `yaml:"enabled"`
	Markers       []string `yaml:"markers"`
	HostFragments []string `yaml:"host_fragments"`
	Decode        struct {
		Mode        string `yaml:"mode"`
		URLTemplate string `yaml:"url_template"`
	} `yaml:"decode"`
}

func (c *Config) normalizeAndValidate() error {
	c.Key = strings.TrimSpace(c.Key)
	c.Name = strings.TrimSpace(c.Name)
	c.Decode.Mode = strings.ToLower(strings.TrimSpace(c.Decode.Mode))

	if c.Key == "" {
		return fmt.Errorf("key is required")
	}
	if c.Name == "" {
		c.Name = c.Key
	}
	if len(c.Markers) == 0 && len(c.HostFragments) == 0 {
		return fmt.Errorf("at least one marker or host fragment is required")
	}

	markers := make([]string, 0, len(c.Markers))
	for _, marker := range c.Markers {
		trimmed := strings.ToLower(strings.TrimSpace(marker))
		if trimmed != "" {
			markers = append(markers, trimmed)
		}
	}
	c.Markers = markers

	fragments := make([]string, 0, len(c.HostFragments))
	for _, fragment := range c.HostFragments {
		trimmed := strings.ToLower(strings.TrimSpace(fragment))
		if trimmed != "" {
			fragments = append(fragments, trimmed)
		}
	}
	c.HostFragments = fragments

	switch c.Decode.Mode {
	case "":
		c.Decode.Mode = ModeDirect
	case ModeDirect, ModeBase64:
	case ModeTemplate:
		if !strings.Contains(c.Decode.URLTemplate, "{code}") {
			return fmt.Errorf("template mode requires url_template with a {code} placeholder")
		}
	default:
		return fmt.Errorf("invalid decode.mode %q, expected direct|base64|template", c.Decode.Mode)
	}

	return nil
}

func (c *Config) isEnabled() bool {
	if c.Enabled == nil {
		return true
	}
	return *c.Enabled
}
