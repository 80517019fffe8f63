// Package i18n holds the bot's interface string tables. Lookup falls back
// to English for unknown languages and unknown keys, so a missing
// translation degrades to a readable message instead of an error.
package i18n

import "strings"

// DefaultLang is the language used before a user has picked one and as the
// fallback for incomplete tables.
const DefaultLang = "en"

// SupportedLangs lists the language tags accepted by the /lang command.
var SupportedLangs = []string{"en", "fa"}

// Supported reports whether lang is a known language tag.
func Supported(lang string) bool {
	for _, l := range SupportedLangs {
		if l == lang {
			return true
		}
	}
	return false
}

var tables = map[string]map[string]string{
	"en": langEN,
	"fa": langFA,
}

// T translates key into lang, substituting "{placeholder}" occurrences from
// the given key/value pairs:
//
//	i18n.T("en", "ASK_ADD_USERNAME", "name", "Gmail")
//
// Unknown languages fall back to English; unknown keys come back verbatim
// so a typo is visible in the chat instead of silently blank.
func T(lang, key string, kv ...string) string {
	table, ok := tables[lang]
	if !ok {
		table = tables[DefaultLang]
	}

	template, ok := table[key]
	if !ok {
		template, ok = tables[DefaultLang][key]
		if !ok {
			template = key
		}
	}

	for i := 0; i+1 < len(kv); i += 2 {
		template = strings.ReplaceAll(template, "{"+kv[i]+"}", kv[i+1])
	}
	return template
}
