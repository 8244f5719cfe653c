// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.

// package i18n provides internationalization and localization support for Keydesk.
// It uses the go-i18n library to load and manage translation files, allowing the
// console to be displayed in multiple languages.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// localeFS embeds the YAML translation files from the 'locales' directory
// into the application binary.
//
//go:embed locales/*.yaml
var localeFS embed.FS

var (
	mu sync.RWMutex
	// bundle stores all the loaded translation messages from the locale files.
	bundle *i18n.Bundle
	// localizer is used to translate messages into a specific language.
	localizer *i18n.Localizer
	lang      string
	locales   map[string]string
)

// displayNames are the human readable names offered by language pickers.
var displayNames = map[string]string{
	"en":    "English",
	"pt-BR": "Português (Brasil)",
}

// Init initializes the i18n bundle and sets up the localizer for a specific language.
// It parses all embedded YAML files from the 'locales' directory.
func Init(l string) {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	found := map[string]string{}
	files, _ := fs.ReadDir(localeFS, "locales")
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + f.Name())
		if err != nil {
			continue
		}
		mf, err := b.ParseMessageFileBytes(data, f.Name())
		if err != nil {
			continue
		}
		tag := mf.Tag.String()
		name := displayNames[tag]
		if name == "" {
			name = tag
		}
		found[tag] = name
	}

	mu.Lock()
	defer mu.Unlock()
	bundle = b
	localizer = i18n.NewLocalizer(b, l)
	lang = l
	locales = found
}

// T translates a message by its ID.
//
// A single map[string]interface{} argument is used as template data. Any
// other arguments are applied to the translated text with fmt.Sprintf.
// If the i18n system has not been initialized, it will default to English.
// If a translation for the given ID is not found, it returns the ID itself.
func T(messageID string, args ...interface{}) string {
	mu.RLock()
	l := localizer
	mu.RUnlock()
	if l == nil {
		Init("en")
		mu.RLock()
		l = localizer
		mu.RUnlock()
	}

	cfg := &i18n.LocalizeConfig{MessageID: messageID}
	if len(args) == 1 {
		if data, ok := args[0].(map[string]interface{}); ok {
			cfg.TemplateData = data
			args = nil
		}
	}

	msg, err := l.Localize(cfg)
	if err != nil {
		// go-i18n reports unknown IDs as errors; fall back to the ID.
		msg = messageID
	}
	if len(args) > 0 && strings.Contains(msg, "%") {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

// Tf translates messageID with named template data.
func Tf(messageID string, data map[string]interface{}) string {
	return T(messageID, data)
}

// SetLang changes the active language of the localizer.
func SetLang(l string) {
	Init(l)
}

// GetLang returns the language the localizer was last initialised with.
func GetLang() string {
	mu.RLock()
	defer mu.RUnlock()
	return lang
}

// GetAvailableLocales returns the locales found in the embedded files,
// keyed by language tag, valued by display name.
func GetAvailableLocales() map[string]string {
	mu.RLock()
	empty := locales == nil
	mu.RUnlock()
	if empty {
		Init("en")
	}
	mu.RLock()
	defer mu.RUnlock()
	out := make(map[string]string, len(locales))
	for k, v := range locales {
		out[k] = v
	}
	return out
}

// LocaleTags returns the available language tags in a stable order.
func LocaleTags() []string {
	av := GetAvailableLocales()
	tags := make([]string, 0, len(av))
	for k := range av {
		tags = append(tags, k)
	}
	sort.Strings(tags)
	return tags
}
