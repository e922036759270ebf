package report

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/dataqa-cli/internal/utils"
)

// Save writes the run to dir/<id>.<ext> atomically and returns the path.
func Save(dir string, r *Run, format string) (string, error) {
	ext, ok := extensions[format]
	if !ok {
		return "", fmt.Errorf("unsupported format: %s (use markdown, json or yaml)", format)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, r, format, 0); err != nil {
		return "", err
	}
	path := filepath.Join(dir, r.ID+ext)
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return "", err
	}
	return path, nil
}

var extensions = map[string]string{
	FormatMarkdown: ".md",
	FormatJSON:     ".json",
	FormatYAML:     ".yaml",
}

// LoadDocument reads a run saved as JSON or YAML.
func LoadDocument(path string) (*Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("run not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("read run: %w", err)
	}
	var d Document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = gojson.Unmarshal(b, &d)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &d)
	default:
		return nil, fmt.Errorf("unsupported run file: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("parse run: %w", err)
	}
	return &d, nil
}

// List returns the structured runs saved in dir, newest first. Markdown runs are
// skipped; a missing dir yields no runs.
func List(dir string) ([]*Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read runs dir: %w", err)
	}
	var out []*Document
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".json", ".yaml", ".yml":
		default:
			continue
		}
		d, err := LoadDocument(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
