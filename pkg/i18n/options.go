package i18n

import "log/slog"

// Option configures a Translator.
type Option func(*Translator)

// WithDefaultLanguage sets the language consulted when the requested one
// lacks a key.
func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) {
		if lang != "" {
			t.defaultLang = lang
		}
	}
}

// WithKeyFallback controls whether T returns the key itself for unknown
// keys. It is on by default; when off T returns "".
func WithKeyFallback(enabled bool) Option {
	return func(t *Translator) { t.fallbackToKey = enabled }
}

// WithLogger sets the logger used for load events and missing keys.
func WithLogger(l *slog.Logger) Option {
	return func(t *Translator) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithMissingKeyHandler calls fn for every lookup that found no template in
// either the requested or the default language.
func WithMissingKeyHandler(fn func(lang, key string)) Option {
	return func(t *Translator) {
		if fn != nil {
			t.onMissing = append(t.onMissing, fn)
		}
	}
}

// WithMissingKeyLogging logs missing keys at warn level.
func WithMissingKeyLogging() Option {
	return func(t *Translator) {
		t.onMissing = append(t.onMissing, func(lang, key string) {
			t.logger.Warn("translation not found", "lang", lang, "key", key)
		})
	}
}
