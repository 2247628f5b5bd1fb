package config

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/clawaudit/clawaudit/internal/errors"
)

// Load reads the configuration document at path and returns its snapshot.
//
// A missing file is the one fatal setup error of an audit run and is reported
// as ErrCodeConfigNotFound.
func Load(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewConfigNotFoundError(path)
		}
		return nil, errors.NewConfigUnreadableError(path, err)
	}

	tree, err := Parse(path, data)
	if err != nil {
		return nil, err
	}
	return tree, nil
}

// Parse decodes data as YAML when name ends in .yaml or .yml and as JSON
// otherwise. JSON input may carry // and /* */ comments and trailing commas.
func Parse(name string, data []byte) (*Tree, error) {
	var (
		doc    any
		format string
	)

	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		format = "YAML"
		dec := yaml.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&doc); err != nil && err != io.EOF {
			return nil, errors.NewConfigInvalidError(name, format, err)
		}
		if err := dec.Decode(new(any)); err != io.EOF {
			return nil, errors.NewConfigInvalidError(name, format, trailingData(err))
		}
	default:
		format = "JSON"
		dec := json.NewDecoder(bytes.NewReader(stripJSONExtensions(data)))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.NewConfigInvalidError(name, format, err)
		}
		if _, err := dec.Token(); err != io.EOF {
			return nil, errors.NewConfigInvalidError(name, format, trailingData(err))
		}
	}

	tree := NewTree(doc)
	tree.source = name
	tree.digest = digestOf(data)
	tree.raw = bytes.Clone(data)
	return tree, nil
}

// trailingData explains why input after the document was rejected.
func trailingData(err error) error {
	if err != nil {
		return fmt.Errorf("data after top-level value: %w", err)
	}
	return stderrors.New("data after top-level value")
}

// stripJSONExtensions removes comments and trailing commas outside of string
// literals. Line structure is preserved so decoder offsets stay meaningful.
func stripJSONExtensions(in []byte) []byte {
	out := make([]byte, 0, len(in))
	inString := false
	escaped := false

	for i := 0; i < len(in); i++ {
		c := in[i]

		if inString {
			out = append(out, c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch {
		case c == '"':
			inString = true
			out = append(out, c)
		case c == '/' && i+1 < len(in) && in[i+1] == '/':
			for i < len(in) && in[i] != '\n' {
				i++
			}
			if i < len(in) {
				out = append(out, '\n')
			}
		case c == '/' && i+1 < len(in) && in[i+1] == '*':
			i += 2
			for i < len(in) && !(in[i] == '*' && i+1 < len(in) && in[i+1] == '/') {
				if in[i] == '\n' {
					out = append(out, '\n')
				}
				i++
			}
			i++
		case c == ',':
			if j := nextSignificant(in, i+1); j < len(in) && (in[j] == '}' || in[j] == ']') {
				continue
			}
			out = append(out, c)
		default:
			out = append(out, c)
		}
	}
	return out
}

// nextSignificant returns the index of the next byte that is not whitespace
// and not part of a comment.
func nextSignificant(in []byte, i int) int {
	for i < len(in) {
		switch {
		case in[i] == ' ' || in[i] == '\t' || in[i] == '\n' || in[i] == '\r':
			i++
		case in[i] == '/' && i+1 < len(in) && in[i+1] == '/':
			for i < len(in) && in[i] != '\n' {
				i++
			}
		case in[i] == '/' && i+1 < len(in) && in[i+1] == '*':
			i += 2
			for i < len(in) && !(in[i] == '*' && i+1 < len(in) && in[i+1] == '/') {
				i++
			}
			i += 2
		default:
			return i
		}
	}
	return i
}
