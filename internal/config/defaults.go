package config

import "runtime"

const (
	defaultOutputDir   = "~/.cache/oeplot/figures"
	defaultDelimiter   = ";"
	defaultFormat      = "png"
	defaultWidth       = 1000
	defaultHeight      = 500
	defaultPanelHeight = 500
	defaultLogFormat   = "console"
	defaultLogLevel    = "warn"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
		},
		CSV: CSV{
			Delimiter: defaultDelimiter,
		},
		Render: Render{
			Format:      defaultFormat,
			Width:       defaultWidth,
			Height:      defaultHeight,
			PanelHeight: defaultPanelHeight,
			Open:        false,
			Viewer:      defaultViewer(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

func defaultViewer() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "windows":
		return "explorer"
	default:
		return "xdg-open"
	}
}
