package i18n

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// LoadLocale builds a Translator from a YAML dictionary mapping message
// codes to templates. Multi-document input overlays documents in order, so
// a base locale can ship with overrides appended. Codes missing from the
// dictionary fall back to the built-in language given by fallbackLang.
//
//	attempted_value_invalid: "Der Wert '{value}' ist für {field} ungültig."
//	unknown_value_invalid: "Der angegebene Wert ist für {field} ungültig."
func LoadLocale(data []byte, fallbackLang string) (Translator, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	messages := map[string]string{}
	for {
		var doc map[string]string
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("i18n: invalid locale document: %w", err)
		}
		for code, tmpl := range doc {
			messages[code] = tmpl
		}
	}
	if len(messages) == 0 {
		return nil, errors.New("i18n: locale data holds no messages")
	}
	if fallbackLang != "ja" {
		fallbackLang = "en"
	}
	return mapTranslator{messages: messages, fallback: dictTranslator{lang: fallbackLang}}, nil
}

// mapTranslator serves YAML-loaded templates with a built-in fallback.
type mapTranslator struct {
	messages map[string]string
	fallback dictTranslator
}

func (t mapTranslator) Message(code string, data map[string]string) string {
	if tmpl, ok := t.messages[code]; ok {
		return interpolate(tmpl, data)
	}
	return t.fallback.Message(code, data)
}
