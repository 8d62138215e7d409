package config

// Theme controls how recordings are drawn. Zero Columns/Rows mean "use the
// recording's own terminal size".
type Theme struct {
	Foreground string `yaml:"foreground"`
	Background string `yaml:"background"`
	Padding    int    `yaml:"padding"`
	Columns    int    `yaml:"columns,omitempty"`
	Rows       int    `yaml:"rows,omitempty"`
	Loop       int    `yaml:"loop"`
}

func DefaultTheme() Theme {
	return Theme{
		Foreground: "#d0d0d0",
		Background: "#1c1c1c",
		Padding:    8,
		Loop:       0,
	}
}
