package i18n

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"sync"
)

// Translator resolves translation keys for a set of languages.
// It is safe for concurrent use.
type Translator struct {
	translations  map[string]map[string]any
	defaultLang   string
	fallbackToKey bool
	onMissing     []func(lang, key string)
	logger        *slog.Logger
	mu            sync.RWMutex
	adapter       TranslationAdapter
}

// NewTranslator creates a new Translator instance with the given adapter and options.
func NewTranslator(ctx context.Context, adapter TranslationAdapter, options ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		defaultLang:   DefaultLanguage,
		fallbackToKey: true,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		adapter:       adapter,
	}
	for _, option := range options {
		option(t)
	}

	if err := t.Reload(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

// Reload loads the translations from the adapter again. On failure the
// previous translations are kept.
func (t *Translator) Reload(ctx context.Context) error {
	translations, err := t.adapter.Load(ctx)
	if err != nil {
		return err
	}
	if err := validateTranslations(translations); err != nil {
		return err
	}

	t.mu.Lock()
	t.translations = translations
	langs := t.supportedLanguages()
	t.mu.Unlock()

	t.logger.InfoContext(ctx, "translations loaded", "languages", langs)
	return nil
}

func validateTranslations(trans map[string]map[string]any) error {
	for lang, translations := range trans {
		if lang == "" {
			return fmt.Errorf("%w: empty language code", ErrInvalidBundle)
		}
		if translations == nil {
			return fmt.Errorf("%w: nil translations for language %q", ErrInvalidBundle, lang)
		}
	}
	return nil
}

func (t *Translator) supportedLanguages() []string {
	langs := make([]string, 0, len(t.translations))
	for lang := range t.translations {
		langs = append(langs, lang)
	}
	slices.Sort(langs)
	return langs
}

// SupportedLanguages returns the loaded language codes in sorted order.
func (t *Translator) SupportedLanguages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.supportedLanguages()
}

func (t *Translator) DefaultLanguage() string {
	return t.defaultLang
}

// lookup traverses a nested map using dot-separated keys. A key that exists
// verbatim at a level wins over its dotted interpretation, so bundles may use
// flat keys such as "FORM.MISSING_REQUIRED_FIELD".
func lookup(m map[string]any, key string) (any, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}

	head, rest, found := strings.Cut(key, ".")
	if !found {
		return nil, false
	}
	next, ok := m[head].(map[string]any)
	if !ok {
		return nil, false
	}
	return lookup(next, rest)
}

// resolve finds a string template for key in lang, then in the default language.
func (t *Translator) resolve(lang, key string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, l := range []string{lang, t.defaultLang} {
		langMap, ok := t.translations[l]
		if !ok {
			continue
		}
		val, ok := lookup(langMap, key)
		if !ok {
			continue
		}
		switch v := val.(type) {
		case string:
			return v, true
		case fmt.Stringer:
			return v.String(), true
		}
	}
	return "", false
}

// Has reports whether lang itself defines key.
func (t *Translator) Has(lang, key string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	langMap, ok := t.translations[lang]
	if !ok {
		return false
	}
	_, ok = lookup(langMap, key)
	return ok
}

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// sprintf substitutes "%{name}" placeholders from key, value argument pairs.
// Unknown placeholders are kept.
func sprintf(tmpl string, args []string) string {
	if len(args) < 2 || !strings.Contains(tmpl, "%{") {
		return tmpl
	}
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if val, ok := params[match[2:len(match)-1]]; ok {
			return val
		}
		return match
	})
}

// T translates key for lang, falling back to the default language and then,
// unless disabled, to the key itself. args are key, value pairs used for
// %{name} substitution.
func (t *Translator) T(lang, key string, args ...string) string {
	if tmpl, ok := t.resolve(lang, key); ok {
		return sprintf(tmpl, args)
	}
	t.missing(lang, key)
	if t.fallbackToKey {
		return sprintf(key, args)
	}
	return ""
}

// Td translates key with an explicit fallback used instead of the key.
func (t *Translator) Td(lang, key, defaultValue string, args ...string) string {
	if tmpl, ok := t.resolve(lang, key); ok {
		return sprintf(tmpl, args)
	}
	t.missing(lang, key)
	return sprintf(defaultValue, args)
}

// Tc translates key using the language stored in ctx.
func (t *Translator) Tc(ctx context.Context, key string, args ...string) string {
	return t.T(LocaleFromContext(ctx), key, args...)
}

func (t *Translator) missing(lang, key string) {
	for _, fn := range t.onMissing {
		fn(lang, key)
	}
}
