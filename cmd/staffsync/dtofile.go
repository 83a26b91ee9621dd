package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// readTarget decodes a desired-state document. Files ending in .yaml or .yml
// are read as YAML, "-" reads JSON from stdin, anything else is JSON.
// Unknown fields are rejected in both formats.
func readTarget(path string, stdin io.Reader, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return withCode(exitUsage, fmt.Errorf("--file is required"))
	}

	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return withCode(exitUsage, fmt.Errorf("read %s: %w", path, err))
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		err = dec.Decode(out)
	default:
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		err = dec.Decode(out)
	}
	if err != nil {
		return withCode(exitUsage, fmt.Errorf("decode %s: %w", path, err))
	}
	return nil
}
