// Package config loads ruler project configuration: the dataset to check,
// engine options and the pack declarations. It is decoupled from CLI
// concerns so other tools can load the same configuration.
package config

// Config is the root of ruler.yaml.
type Config struct {
	// Dataset is the path to the CSV file to validate.
	Dataset string `koanf:"dataset"`

	Verbose bool   `koanf:"verbose"`
	Output  string `koanf:"output"`

	Options OptionsConfig `koanf:"options"`
	Packs   []PackConfig  `koanf:"packs"`
}

// OptionsConfig holds engine options. Pointers distinguish "unset" from
// an explicit false.
type OptionsConfig struct {
	RemoveObeyers *bool  `koanf:"remove_obeyers"`
	Guess         *bool  `koanf:"guess"`
	RuleSep       string `koanf:"rule_sep"`
}

// PackConfig declares one pack. Either Use names a builtin pack (With
// carrying its options), or Rules maps rule names to Starlark expressions
// evaluated as a pack of the given Type.
type PackConfig struct {
	Name  string            `koanf:"name"`
	Use   string            `koanf:"use"`
	Type  string            `koanf:"type"`
	With  map[string]any    `koanf:"with"`
	Rules map[string]string `koanf:"rules"`
}
