package config

import "fmt"

func DefaultThemeTemplate() string {
	theme := DefaultTheme()
	return fmt.Sprintf(`# cast2gif theme
foreground: %q
background: %q
# pixels around the terminal grid
padding: %d
# override the recording's terminal size (0 keeps it)
columns: 0
rows: 0
# gif loop count, 0 loops forever, -1 plays once
loop: %d
`, theme.Foreground, theme.Background, theme.Padding, theme.Loop)
}
