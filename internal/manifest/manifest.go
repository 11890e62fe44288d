// Package manifest holds the email template configuration: which preview
// file feeds which script function, and the literal→variable placeholder
// pairs substituted along the way.
//
// The tables are plain data. A default manifest covering every template is
// embedded in the binary; a YAML file with the same shape can override it.
// Placeholder pairs are lists, not maps, so their order survives decoding.
package manifest

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cartcure/sitetools/internal/templit"
)

//go:embed templates.yaml
var defaultYAML []byte

// Placeholder is one literal→replacement pair. From is the sample text as
// it appears in the preview HTML; To is the interpolation expression that
// replaces it.
type Placeholder struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// SkipReason marks a template as excluded from syncing. A nil *SkipReason
// on a Template means "process normally".
type SkipReason struct {
	Note string `yaml:"note"`
}

// Template maps one preview file to its function in the target script.
type Template struct {
	File         string        `yaml:"file"`
	Function     string        `yaml:"function"`
	Variable     string        `yaml:"var"`
	Return       bool          `yaml:"return"`
	Skip         *SkipReason   `yaml:"skip"`
	Placeholders []Placeholder `yaml:"placeholders"`
}

// Target returns the locator target for this template.
func (t *Template) Target() templit.Target {
	return templit.Target{Function: t.Function, Variable: t.Variable, Return: t.Return}
}

// Manifest is the full configuration. Common pairs (the shared color
// palette) apply to every template, before its own pairs.
type Manifest struct {
	Common    []Placeholder `yaml:"common"`
	Templates []Template    `yaml:"templates"`
}

// Default returns the embedded manifest.
func Default() (*Manifest, error) {
	return decode(defaultYAML)
}

// Load reads a manifest from a YAML file on disk.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	m, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func decode(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	if len(m.Templates) == 0 {
		return fmt.Errorf("manifest has no templates")
	}
	seen := make(map[string]struct{}, len(m.Templates))
	for i := range m.Templates {
		t := &m.Templates[i]
		if t.File == "" {
			return fmt.Errorf("template %d: missing file", i)
		}
		if t.Function == "" {
			return fmt.Errorf("template %s: missing function", t.File)
		}
		if t.Variable == "" && !t.Return {
			return fmt.Errorf("template %s: needs var or return", t.File)
		}
		if t.Variable != "" && t.Return {
			return fmt.Errorf("template %s: var and return are mutually exclusive", t.File)
		}
		if _, dup := seen[t.File]; dup {
			return fmt.Errorf("template %s: configured twice", t.File)
		}
		seen[t.File] = struct{}{}
	}
	return nil
}

// Pairs returns the replacement pairs for t: the common palette first,
// then the template's own pairs, in declaration order.
func (m *Manifest) Pairs(t *Template) []Placeholder {
	pairs := make([]Placeholder, 0, len(m.Common)+len(t.Placeholders))
	pairs = append(pairs, m.Common...)
	pairs = append(pairs, t.Placeholders...)
	return pairs
}

// Match returns the templates whose file name contains substr, preserving
// manifest order. An empty substr matches everything.
func (m *Manifest) Match(substr string) []*Template {
	var out []*Template
	for i := range m.Templates {
		if strings.Contains(m.Templates[i].File, substr) {
			out = append(out, &m.Templates[i])
		}
	}
	return out
}

// Files returns the configured preview file names in manifest order.
func (m *Manifest) Files() []string {
	names := make([]string, len(m.Templates))
	for i := range m.Templates {
		names[i] = m.Templates[i].File
	}
	return names
}
