package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrymomot/blueprint/pkg/data"
)

// readPayload decodes a JSON or YAML document. "-" reads JSON from in.
func readPayload(path string, in io.Reader) (*data.Map, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(in)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read payload: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return data.FromYAML(raw)
	default:
		return data.FromJSON(raw)
	}
}
