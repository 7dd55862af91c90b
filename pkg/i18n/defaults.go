package i18n

import (
	"context"
	"embed"
)

//go:embed locales/*
var defaultLocales embed.FS

// MissingRequiredFieldKey is the message prefix used for absent required fields.
const MissingRequiredFieldKey = "FORM.MISSING_REQUIRED_FIELD"

// DefaultBundles returns an adapter over the built-in translations.
func DefaultBundles() TranslationAdapter {
	return NewFSAdapter(defaultLocales, "locales")
}

// NewDefaultTranslator loads the built-in translations followed by extra
// adapters, whose keys override the built-in ones.
func NewDefaultTranslator(ctx context.Context, extra []TranslationAdapter, opts ...Option) (*Translator, error) {
	adapters := append(MultiAdapter{DefaultBundles()}, extra...)
	return NewTranslator(ctx, adapters, opts...)
}
