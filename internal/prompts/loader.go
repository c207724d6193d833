// Package prompts holds the model prompt templates. Templates live in
// embedded JSON documents, one document per model task, keyed by prompt
// name. Placeholders use the {{.Name}} form.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed *.json
var templateFS embed.FS

var (
	mu        sync.RWMutex
	documents = make(map[string]map[string]string)
)

// Get returns the named template from a prompt document, loading and
// caching the document on first use.
func Get(file, name string) (string, error) {
	mu.RLock()
	doc, ok := documents[file]
	mu.RUnlock()

	if !ok {
		var err error
		if doc, err = loadDocument(file); err != nil {
			return "", err
		}
	}

	template, ok := doc[name]
	if !ok {
		return "", fmt.Errorf("prompt %q not found in %s", name, file)
	}
	return template, nil
}

// MustGet is Get for templates that ship with the binary; a failure
// there is a packaging bug, so it panics.
func MustGet(file, name string) string {
	template, err := Get(file, name)
	if err != nil {
		panic(err)
	}
	return template
}

// loadDocument reads and caches one embedded prompt document.
func loadDocument(file string) (map[string]string, error) {
	mu.Lock()
	defer mu.Unlock()

	if doc, ok := documents[file]; ok {
		return doc, nil
	}

	raw, err := templateFS.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", file, err)
	}

	doc := make(map[string]string)
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", file, err)
	}

	documents[file] = doc
	return doc, nil
}

// Format substitutes {{.Name}} placeholders in a template. Placeholders
// without a value are left in place.
func Format(template string, values map[string]string) string {
	pairs := make([]string, 0, len(values)*2)
	for name, value := range values {
		pairs = append(pairs, "{{."+name+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// ClearCache drops the cached documents. Tests use it to exercise the
// loading path.
func ClearCache() {
	mu.Lock()
	documents = make(map[string]map[string]string)
	mu.Unlock()
}
