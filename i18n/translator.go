// Package i18n resolves binding message templates per code. The built-in
// dictionaries cover "en" and "ja"; additional locales load from YAML via
// LoadLocale. Templates interpolate {field} and {value} placeholders from
// the data map.
package i18n

import "strings"

// Message codes for binding and validation text.
const (
	CodeAttemptedValueInvalid = "attempted_value_invalid"
	CodeUnknownValueInvalid   = "unknown_value_invalid"
	CodeValueMustNotBeNull    = "value_must_not_be_null"
	CodeMissingBindRequired   = "missing_bind_required"
	CodeValueMustBeANumber    = "value_must_be_a_number"
	CodeTooManyModelErrors    = "too_many_model_errors"
)

// Translator retrieves message templates for binding codes. data provides
// the values interpolated into {key} placeholders (for example "field" or
// "value").
type Translator interface {
	Message(code string, data map[string]string) string
}

// interpolate substitutes {key} placeholders from data.
func interpolate(tmpl string, data map[string]string) string {
	for k, v := range data {
		tmpl = strings.ReplaceAll(tmpl, "{"+k+"}", v)
	}
	return tmpl
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var tmpl string
	switch t.lang {
	case "ja":
		switch code {
		case CodeAttemptedValueInvalid:
			tmpl = "値 '{value}' は {field} に対して不正です"
		case CodeUnknownValueInvalid:
			tmpl = "指定された値は {field} に対して不正です"
		case CodeValueMustNotBeNull:
			tmpl = "値 '{value}' は不正です"
		case CodeMissingBindRequired:
			tmpl = "{field} の値が指定されていません"
		case CodeValueMustBeANumber:
			tmpl = "{field} は数値でなければなりません"
		case CodeTooManyModelErrors:
			tmpl = "記録できるモデルエラーの上限に達しました"
		}
	default: // "en"
		switch code {
		case CodeAttemptedValueInvalid:
			tmpl = "The value '{value}' is not valid for {field}."
		case CodeUnknownValueInvalid:
			tmpl = "The supplied value is invalid for {field}."
		case CodeValueMustNotBeNull:
			tmpl = "The value '{value}' is invalid."
		case CodeMissingBindRequired:
			tmpl = "A value for the '{field}' parameter or property was not provided."
		case CodeValueMustBeANumber:
			tmpl = "The field {field} must be a number."
		case CodeTooManyModelErrors:
			tmpl = "The maximum number of allowed model errors has been reached."
		}
	}
	if tmpl == "" {
		return code
	}
	return interpolate(tmpl, data)
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// Message resolves a code through the current Translator. Callers are
// expected to resolve per occurrence; nothing is cached here.
func Message(code string, data map[string]string) string {
	return currentTranslator.Message(code, data)
}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}
