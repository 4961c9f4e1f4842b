package pipeline

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/briefcheck/internal/model"
	"gopkg.in/yaml.v3"
)

var (
	// ErrTooLarge is returned when a brief file exceeds the byte limit
	ErrTooLarge = errors.New("brief exceeds size limit")
	// ErrUnsupportedFormat is returned for files that are neither JSON nor YAML
	ErrUnsupportedFormat = errors.New("unsupported brief format")
)

// Loader reads brief documents from disk
type Loader struct {
	maxBytes int64
}

// NewLoader creates a loader; maxBytes <= 0 disables the limit
func NewLoader(maxBytes int64) *Loader {
	return &Loader{maxBytes: maxBytes}
}

// Load reads and decodes the brief at path. The format follows the file
// extension; unknown extensions are sniffed as JSON.
func (l *Loader) Load(path string) (*model.Brief, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open brief: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if l.maxBytes > 0 {
		// One extra byte tells a file at the limit from one past it
		r = io.LimitReader(f, l.maxBytes+1)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read brief: %w", err)
	}
	if l.maxBytes > 0 && int64(len(data)) > l.maxBytes {
		return nil, fmt.Errorf("%w: %s is larger than %d bytes", ErrTooLarge, path, l.maxBytes)
	}

	brief, err := Decode(data, formatOf(path, data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return brief, nil
}

// Decode parses a brief in the given format ("json" or "yaml")
func Decode(data []byte, format string) (*model.Brief, error) {
	var brief model.Brief
	switch format {
	case "json":
		if err := json.Unmarshal(data, &brief); err != nil {
			return nil, err
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &brief); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return &brief, nil
}

func formatOf(path string, data []byte) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	}
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		return "json"
	}
	return "unknown"
}
