package i18n

import (
	"context"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is the default language code used when no language is detected
const DefaultLanguage = "en"

// maxAcceptLanguageLength bounds the Accept-Language header we are willing to parse.
const maxAcceptLanguageLength = 4096

// MatchLanguage picks the supported language that best serves an
// Accept-Language header ("de-CH, fr;q=0.8"). Region variants fall back to
// their base language. defaultLang is returned when nothing matches.
func MatchLanguage(header string, supported []string, defaultLang string) string {
	header = strings.TrimSpace(header)
	if header == "" || len(supported) == 0 {
		return defaultLang
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	wanted, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(wanted) == 0 {
		return defaultLang
	}

	names := make([]string, 0, len(supported))
	tags := make([]language.Tag, 0, len(supported))
	for _, s := range supported {
		tag, err := language.Parse(s)
		if err != nil {
			continue
		}
		names = append(names, s)
		tags = append(tags, tag)
	}
	if len(tags) == 0 {
		return defaultLang
	}

	_, idx, confidence := language.NewMatcher(tags).Match(wanted...)
	if confidence == language.No {
		return defaultLang
	}
	return names[idx]
}

type localeKey struct{}

// WithLocale stores the negotiated language in ctx.
func WithLocale(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, localeKey{}, lang)
}

// LocaleFromContext returns the language stored by WithLocale, or
// DefaultLanguage.
func LocaleFromContext(ctx context.Context) string {
	if ctx != nil {
		if lang, ok := ctx.Value(localeKey{}).(string); ok && lang != "" {
			return lang
		}
	}
	return DefaultLanguage
}
