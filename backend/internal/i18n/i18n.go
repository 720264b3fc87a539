package i18n

import "strings"

// Locale identifies one of the site languages. Thai is the primary
// language for every content entity; English and Chinese are optional
// translation layers on top of it.
type Locale string

const (
	// LocaleThai is the primary content language.
	LocaleThai Locale = "th"
	// LocaleEnglish is the first optional translation layer.
	LocaleEnglish Locale = "en"
	// LocaleChinese is carried by Blog content only.
	LocaleChinese Locale = "zh"
)

// Primary is the locale every translated field falls back to.
const Primary = LocaleThai

// Supported lists the locales the site recognises, primary first.
func Supported() []Locale {
	return []Locale{LocaleThai, LocaleEnglish, LocaleChinese}
}

// Normalize maps a raw locale string (query param, header) onto a
// supported Locale. Anything unrecognised collapses to the primary
// language rather than erroring.
func Normalize(raw string) Locale {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "en", "en-us", "en-gb":
		return LocaleEnglish
	case "zh", "zh-cn", "zh-tw":
		return LocaleChinese
	default:
		return Primary
	}
}

// Resolve picks the display value for a translated field.
//
// The rule is a single-level fallback: when the requested locale has a
// non-empty translation it wins, otherwise the primary value is used
// as-is. A missing Chinese translation does not cascade through English
// on its way down. An empty or whitespace-only translation counts as
// missing.
func Resolve(locale Locale, primary string, translations map[Locale]string) string {
	if locale == Primary {
		return primary
	}
	if value, ok := translations[locale]; ok && strings.TrimSpace(value) != "" {
		return value
	}
	return primary
}
