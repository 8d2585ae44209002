package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeCSV()
	c.normalizeRender()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("OEPLOT_OUTPUT_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.OutputDir = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	var err error
	if c.Paths.OutputDir, err = expandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeCSV() {
	// Whitespace is significant here; Validate rejects the unusable kinds.
	if c.CSV.Delimiter == "" {
		c.CSV.Delimiter = defaultDelimiter
	}
}

func (c *Config) normalizeRender() {
	c.Render.Format = strings.ToLower(strings.TrimSpace(c.Render.Format))
	if c.Render.Format == "" {
		c.Render.Format = defaultFormat
	}
	if c.Render.Width <= 0 {
		c.Render.Width = defaultWidth
	}
	if c.Render.Height <= 0 {
		c.Render.Height = defaultHeight
	}
	if c.Render.PanelHeight <= 0 {
		c.Render.PanelHeight = defaultPanelHeight
	}
	if value, ok := os.LookupEnv("OEPLOT_VIEWER"); ok && strings.TrimSpace(value) != "" {
		c.Render.Viewer = value
	}
	c.Render.Viewer = strings.TrimSpace(c.Render.Viewer)
	if c.Render.Viewer == "" {
		c.Render.Viewer = defaultViewer()
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
