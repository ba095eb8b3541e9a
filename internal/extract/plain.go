package extract

import (
	"context"
	"os"

	"github.com/rotisserie/eris"
)

// PlainText reads a file's bytes as UTF-8 text.
type PlainText struct{}

// ExtractText returns the file contents verbatim.
func (p *PlainText) ExtractText(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", eris.Wrapf(err, "extract: read %s", path)
	}
	return string(data), nil
}
