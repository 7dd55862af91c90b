// Package i18n translates user facing messages of blueprint validation.
//
// A Translator loads nested translation maps through a TranslationAdapter
// (in-memory map, file, directory or fs.FS) parsed from YAML or JSON. Keys
// are dotted paths into the nested map and templates use %{name}
// placeholders:
//
//	tr, err := i18n.NewTranslator(ctx, i18n.NewFileAdapter(i18n.NewYAMLParser(), "locales/de.yaml"))
//	tr.T("de", "VALIDATION.MIN_LENGTH", "field", "Name", "min", "3")
//
// NewDefaultTranslator ships the built-in bundles for the messages the
// validation core and field types produce.
//
// A Localizer binds a translator to a language and plugs into the schema as
// its Labeler and MessageFormatter:
//
//	loc := i18n.NewLocalizer(tr, i18n.LocaleFromContext(r.Context()))
//	schema = schema.With(blueprint.WithLabeler(loc), blueprint.WithMessageFormatter(loc))
//
// Middleware resolves the request language from a cookie, the "lang" query
// parameter or Accept-Language and stores it in the request context.
package i18n
