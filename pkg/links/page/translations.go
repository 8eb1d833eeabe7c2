package page

import (
	i18n "github.com/goliatone/go-i18n"
)

// Translations returns the default catalog for the page provider labels.
func Translations() i18n.Translations {
	return i18n.Translations{
		"en": newCatalog("en", map[string]string{
			TitleKey:     "Pages",
			EmptyTextKey: "No page selected",
		}),
		"de": newCatalog("de", map[string]string{
			TitleKey:     "Seiten",
			EmptyTextKey: "Keine Seite ausgewählt",
		}),
	}
}

func newCatalog(locale string, entries map[string]string) *i18n.TranslationCatalog {
	catalog := &i18n.TranslationCatalog{
		Locale:   i18n.Locale{Code: locale},
		Messages: make(map[string]i18n.Message),
	}
	for key, template := range entries {
		msg := i18n.Message{}
		msg.SetContent(template)
		catalog.Messages[key] = msg
	}
	return catalog
}
