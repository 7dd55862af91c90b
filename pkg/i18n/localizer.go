package i18n

import (
	"fmt"

	"github.com/dmitrymomot/blueprint"
)

// Localizer binds a Translator to one language. It resolves field labels
// and missing-field messages for a schema and translates field type errors.
type Localizer struct {
	tr   *Translator
	lang string
}

func NewLocalizer(tr *Translator, lang string) *Localizer {
	if lang == "" {
		lang = tr.DefaultLanguage()
	}
	return &Localizer{tr: tr, lang: lang}
}

func (l *Localizer) Lang() string { return l.lang }

// Label translates the rule label, which may be a translation key. Labels
// without a translation are used as is.
func (l *Localizer) Label(rule *blueprint.Rule) string {
	label := rule.DisplayName()
	return l.tr.Td(l.lang, label, label)
}

// MissingField renders "<translated prefix> <label>".
func (l *Localizer) MissingField(label string) string {
	return l.tr.Td(l.lang, MissingRequiredFieldKey, blueprint.DefaultMissingFieldTemplate) + " " + label
}

// Translate renders key with values as %{name} parameters, or fallback when
// the key is unknown.
func (l *Localizer) Translate(key string, values map[string]any, fallback string) string {
	args := make([]string, 0, len(values)*2)
	for k, v := range values {
		args = append(args, k, fmt.Sprint(v))
	}
	return l.tr.Td(l.lang, key, fallback, args...)
}

var (
	_ blueprint.Labeler          = (*Localizer)(nil)
	_ blueprint.MessageFormatter = (*Localizer)(nil)
)
