// Package i18n renders user-facing messages in Spanish (default) or English.
package i18n

import (
	"embed"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

//go:embed active.*.toml
var localeFS embed.FS

// Translator is a thin wrapper around go-i18n's Bundle/Localizer.
type Translator struct {
	bundle          *i18n.Bundle
	defaultLanguage language.Tag
	log             *zap.Logger
}

// NewTranslator loads the embedded message files. Unknown default locales fall back to Spanish.
func NewTranslator(defaultLocale string, log *zap.Logger) *Translator {
	if log == nil {
		log = zap.NewNop()
	}
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		tag = language.Spanish
	}
	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range []string{"active.es.toml", "active.en.toml"} {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			log.Error("i18n: failed to load message file", zap.String("file", file), zap.Error(err))
		}
	}

	return &Translator{
		bundle:          bundle,
		defaultLanguage: tag,
		log:             log,
	}
}

// T renders the message id for acceptLanguage, an Accept-Language header value or a bare tag.
// Missing messages fall back to the default language and then to the id itself.
func (t *Translator) T(acceptLanguage, id string, data map[string]any) string {
	if id == "" {
		return ""
	}

	languages := []string{}
	if acceptLanguage != "" {
		languages = append(languages, acceptLanguage)
	}
	languages = append(languages, t.defaultLanguage.String())

	localizer := i18n.NewLocalizer(t.bundle, languages...)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		t.log.Debug("i18n: localize failed", zap.String("id", id), zap.Strings("languages", languages), zap.Error(err))
		return id
	}
	return msg
}

// Fields translates every message id in a field error map.
func (t *Translator) Fields(acceptLanguage string, fields map[string]string) map[string]string {
	if len(fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(fields))
	for field, id := range fields {
		out[field] = t.T(acceptLanguage, id, nil)
	}
	return out
}
