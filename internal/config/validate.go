package config

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCSV(); err != nil {
		return err
	}
	if err := c.validateRender(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateCSV() error {
	if utf8.RuneCountInString(c.CSV.Delimiter) != 1 {
		return fmt.Errorf("csv.delimiter must be a single character, got %q", c.CSV.Delimiter)
	}
	r, _ := utf8.DecodeRuneInString(c.CSV.Delimiter)
	switch {
	case r == '"' || r == utf8.RuneError:
		return fmt.Errorf("csv.delimiter %q is not allowed", c.CSV.Delimiter)
	case r != '\t' && unicode.IsSpace(r):
		return fmt.Errorf("csv.delimiter %q is whitespace; only a tab is accepted", c.CSV.Delimiter)
	}
	return nil
}

func (c *Config) validateRender() error {
	switch c.Render.Format {
	case "png", "svg":
	default:
		return fmt.Errorf("render.format must be png or svg, got %q", c.Render.Format)
	}
	if err := ensurePositiveMap(map[string]int{
		"render.width":        c.Render.Width,
		"render.height":       c.Render.Height,
		"render.panel_height": c.Render.PanelHeight,
	}); err != nil {
		return err
	}
	if c.Render.Open && c.Render.Viewer == "" {
		return errors.New("render.viewer must be set when render.open is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
