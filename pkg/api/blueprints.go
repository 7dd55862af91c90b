package api

import (
	"maps"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/blueprint"
	"github.com/dmitrymomot/blueprint/pkg/binder"
	"github.com/dmitrymomot/blueprint/pkg/data"
	"github.com/dmitrymomot/blueprint/pkg/i18n"
	"github.com/dmitrymomot/blueprint/pkg/logger"
)

const (
	actionValidate = "validate"
	actionFilter   = "filter"
)

// ValidationResult is the data of a successful validation.
type ValidationResult struct {
	Valid bool `json:"valid"`
}

// BlueprintInfo describes a loaded blueprint.
type BlueprintInfo struct {
	Name   string      `json:"name"`
	Title  string      `json:"title,omitempty"`
	Strict bool        `json:"strict"`
	Fields []FieldInfo `json:"fields"`
	Types  []string    `json:"types,omitempty"`
}

// FieldInfo describes a declared field.
type FieldInfo struct {
	Path     string    `json:"path"`
	Type     string    `json:"type,omitempty"`
	Label    string    `json:"label,omitempty"`
	Required bool      `json:"required,omitempty"`
	Ignored  bool      `json:"ignored,omitempty"`
	Multiple bool      `json:"multiple,omitempty"`
	Default  any       `json:"default,omitempty"`
	Options  *data.Map `json:"options,omitempty"`
}

func (s *Server) list(*http.Request) Response {
	names := s.store.Names()
	return JSON(names, WithMeta(map[string]any{"total": len(names)}))
}

func (s *Server) describe(r *http.Request) Response {
	name := strings.Trim(chi.URLParam(r, "*"), "/")
	bp, err := s.store.Blueprint(name)
	if err != nil {
		return JSONError(err)
	}
	schema, err := s.schema(r, name)
	if err != nil {
		return JSONError(err)
	}

	label := func(rule *blueprint.Rule) string { return rule.Label }
	if s.translator != nil {
		label = i18n.NewLocalizer(s.translator, i18n.LocaleFromContext(r.Context())).Label
	}

	info := BlueprintInfo{
		Name:   name,
		Title:  bp.Title,
		Strict: schema.Tree().Strict(),
		Fields: []FieldInfo{},
		Types:  slices.Sorted(maps.Keys(schema.Types())),
	}
	for _, path := range schema.Tree().Paths() {
		rule, ok := schema.Index().Lookup(path)
		if !ok {
			info.Fields = append(info.Fields, FieldInfo{Path: path})
			continue
		}
		info.Fields = append(info.Fields, FieldInfo{
			Path:     path,
			Type:     rule.Type,
			Label:    label(rule),
			Required: rule.Required(),
			Ignored:  rule.Ignored(),
			Multiple: rule.Multiple,
			Default:  rule.Default,
			Options:  rule.Options,
		})
	}
	return JSON(info)
}

// action dispatches POST /blueprints/{name}/{validate|filter}.
func (s *Server) action(r *http.Request) Response {
	name, action, ok := cutLast(strings.Trim(chi.URLParam(r, "*"), "/"))
	if !ok || name == "" {
		return JSONError(ErrNotFound)
	}
	switch action {
	case actionValidate:
		return s.validate(r, name)
	case actionFilter:
		return s.filter(r, name)
	default:
		return JSONError(ErrNotFound)
	}
}

func (s *Server) validate(r *http.Request, name string) Response {
	schema, payload, resp := s.prepare(r, name)
	if resp != nil {
		return resp
	}

	start := time.Now()
	res := schema.Check(payload)
	s.metrics.ObserveValidation(name, res, time.Since(start))

	s.logger.DebugContext(r.Context(), "payload validated",
		logger.Blueprint(name),
		logger.Outcome(res.Outcome.String()),
		logger.Language(i18n.LocaleFromContext(r.Context())),
	)
	if res.Valid() {
		return JSON(ValidationResult{Valid: true})
	}
	return JSONError(res.Err())
}

func (s *Server) filter(r *http.Request, name string) Response {
	schema, payload, resp := s.prepare(r, name)
	if resp != nil {
		return resp
	}

	missingAsNull := missingNull(r.URL.Query().Get("missing"))
	out, err := schema.Filter(payload, missingAsNull)
	if err != nil {
		return JSONError(err)
	}
	s.metrics.ObserveFilter(name)
	return JSON(out)
}

// prepare resolves the localized schema and binds the request payload.
func (s *Server) prepare(r *http.Request, name string) (*blueprint.Schema, *data.Map, Response) {
	schema, err := s.schema(r, name)
	if err != nil {
		return nil, nil, JSONError(err)
	}
	payload, err := binder.Bind(r, binder.WithMaxBodySize(s.maxBodySize))
	if err != nil {
		s.logger.WarnContext(r.Context(), "failed to bind payload", logger.Blueprint(name), logger.Error(err))
		return nil, nil, JSONError(err)
	}
	return schema, payload, nil
}

// schema returns the named schema bound to the request language.
func (s *Server) schema(r *http.Request, name string) (*blueprint.Schema, error) {
	schema, err := s.store.Get(name)
	if err != nil {
		return nil, err
	}
	if s.translator == nil {
		return schema, nil
	}

	loc := i18n.NewLocalizer(s.translator, i18n.LocaleFromContext(r.Context()))
	opts := []blueprint.Option{
		blueprint.WithLabeler(loc),
		blueprint.WithMessageFormatter(loc),
	}
	if s.registry != nil {
		opts = append(opts, blueprint.WithFieldOperator(s.registry.WithTranslator(loc)))
	}
	return schema.With(opts...), nil
}

func cutLast(path string) (head, tail string, ok bool) {
	i := strings.LastIndexByte(path, '/')
	if i < 0 {
		return "", path, false
	}
	return path[:i], path[i+1:], true
}

// missingNull accepts ?missing=null as well as boolean spellings.
func missingNull(v string) bool {
	if v == "null" {
		return true
	}
	b, _ := strconv.ParseBool(v)
	return b
}
