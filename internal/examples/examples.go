// Package examples loads the worked question/query example set rendered into
// the generation and validation prompts.
package examples

import (
	_ "embed"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Example is one worked question→query pair.
type Example struct {
	Question string `yaml:"question"`
	Query    string `yaml:"query"`
}

//go:embed defaults.yaml
var defaultsYAML []byte

type fileFormat struct {
	Examples []Example `yaml:"examples"`
}

// Load reads an example set from a YAML file. An empty path loads the
// embedded defaults.
func Load(path string) ([]Example, error) {
	data := defaultsYAML
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, eris.Wrapf(err, "examples: read %s", path)
		}
		data = b
	}

	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, eris.Wrap(err, "examples: unmarshal")
	}
	if len(f.Examples) == 0 {
		return nil, eris.New("examples: empty example set")
	}
	for i, ex := range f.Examples {
		if strings.TrimSpace(ex.Question) == "" || strings.TrimSpace(ex.Query) == "" {
			return nil, eris.Errorf("examples: entry %d missing question or query", i)
		}
	}

	return f.Examples, nil
}

// Render formats the set as "question => query" lines for a prompt.
func Render(set []Example) string {
	var b strings.Builder
	for _, ex := range set {
		b.WriteString("- ")
		b.WriteString(ex.Question)
		b.WriteString(" => ")
		b.WriteString(ex.Query)
		b.WriteString("\n")
	}
	return b.String()
}
