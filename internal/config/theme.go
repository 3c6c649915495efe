package config

const (
	LightTheme string = "light-theme"
	DarkTheme  string = "dark-theme"

	// Icons shown on the toggle button: the theme the click switches to.
	LightThemeIcon string = `<span class="theme-icon">&#9728;</span>`
	DarkThemeIcon  string = `<span class="theme-icon">&#9790;</span>`
)
