package assets

var defaultLoader = NewEmbeddedLoader()

// LoadTemplate returns a built-in template.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.Load(Template, name)
}

// LoadStyle returns a built-in style.
func LoadStyle(name string) (string, error) {
	return defaultLoader.Load(Style, name)
}
