package i18n

import (
	"net/http"
	"strings"
)

// LangExtractor extracts the preferred language from a request, "" when unknown.
type LangExtractor func(r *http.Request) string

// ExtractorConfig holds configuration for the language extractor
type ExtractorConfig struct {
	CookieName     string
	QueryParamName string
	SupportedLangs []string
}

// ExtractorOption configures the language extractor
type ExtractorOption func(*ExtractorConfig)

func WithCookieName(name string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if name != "" {
			c.CookieName = name
		}
	}
}

func WithQueryParamName(name string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if name != "" {
			c.QueryParamName = name
		}
	}
}

// WithSupportedLanguages restricts extracted languages to langs.
func WithSupportedLanguages(langs ...string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if len(langs) > 0 {
			c.SupportedLangs = langs
		}
	}
}

// DefaultLangExtractor checks, in order, the "lang" cookie, the "lang" query
// parameter and the Accept-Language header. With supported languages set,
// values are matched against them and unsupported ones are skipped.
func DefaultLangExtractor(opts ...ExtractorOption) LangExtractor {
	config := &ExtractorConfig{
		CookieName:     "lang",
		QueryParamName: "lang",
	}
	for _, opt := range opts {
		opt(config)
	}

	match := func(value string) string {
		value = strings.TrimSpace(value)
		if value == "" {
			return ""
		}
		if len(config.SupportedLangs) == 0 {
			return strings.ToLower(value)
		}
		return MatchLanguage(value, config.SupportedLangs, "")
	}

	return func(r *http.Request) string {
		if config.CookieName != "" {
			if cookie, err := r.Cookie(config.CookieName); err == nil {
				if lang := match(cookie.Value); lang != "" {
					return lang
				}
			}
		}

		if config.QueryParamName != "" {
			if lang := match(r.URL.Query().Get(config.QueryParamName)); lang != "" {
				return lang
			}
		}

		header := r.Header.Get("Accept-Language")
		if header == "" {
			return ""
		}
		if len(config.SupportedLangs) > 0 {
			return MatchLanguage(header, config.SupportedLangs, "")
		}
		first, _, _ := strings.Cut(header, ",")
		first, _, _ = strings.Cut(first, ";")
		return strings.ToLower(strings.TrimSpace(first))
	}
}

// Middleware stores the language found by extr (DefaultLangExtractor when
// nil) in the request context. DefaultLanguage is used when none is found.
func Middleware(extr LangExtractor) func(http.Handler) http.Handler {
	if extr == nil {
		extr = DefaultLangExtractor()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := extr(r)
			if lang == "" {
				lang = DefaultLanguage
			}
			next.ServeHTTP(w, r.WithContext(WithLocale(r.Context(), lang)))
		})
	}
}
