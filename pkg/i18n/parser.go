package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parser decodes a translation file into language keyed bundles.
type Parser interface {
	Parse(ctx context.Context, content []byte) (map[string]map[string]any, error)
}

// NewParserForFile returns a parser based on the file extension, nil when
// the extension is not supported.
func NewParserForFile(filename string) Parser {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), ".")) {
	case "json":
		return NewJSONParser()
	case "yaml", "yml":
		return NewYAMLParser()
	default:
		return nil
	}
}

// JSONParser implements the Parser interface for JSON files
type JSONParser struct{}

func NewJSONParser() *JSONParser {
	return &JSONParser{}
}

func (p *JSONParser) Parse(ctx context.Context, content []byte) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	var doc map[string]any
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, errors.Join(ErrFailedToParseJSON, err)
	}
	return splitLanguages(doc)
}

// YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func NewYAMLParser() *YAMLParser {
	return &YAMLParser{}
}

func (p *YAMLParser) Parse(ctx context.Context, content []byte) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}
	return splitLanguages(doc)
}

func splitLanguages(doc map[string]any) (map[string]map[string]any, error) {
	result := make(map[string]map[string]any, len(doc))
	for lang, val := range doc {
		translations, ok := val.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: language %q must map keys to translations, got %T", ErrInvalidBundle, lang, val)
		}
		result[lang] = translations
	}
	return result, nil
}
