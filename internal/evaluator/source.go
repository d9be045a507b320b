package evaluator

import (
	"fmt"
	"os"
)

// Source is a script and the name it is reported under.
type Source struct {
	FileName string
	Text     string
}

// SourceFromFile reads a script. The file is closed before the function
// returns.
func SourceFromFile(path string) (Source, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Source{}, fmt.Errorf("failed to read script %s: %w", path, err)
	}
	return Source{FileName: path, Text: string(b)}, nil
}
