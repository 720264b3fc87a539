package i18n

import "testing"

func TestResolvePrefersTranslation(t *testing.T) {
	translations := map[Locale]string{
		LocaleEnglish: "Cream Jar",
		LocaleChinese: "面霜罐",
	}

	if got := Resolve(LocaleEnglish, "กระปุกครีม", translations); got != "Cream Jar" {
		t.Fatalf("expected english translation, got %q", got)
	}
	if got := Resolve(LocaleChinese, "กระปุกครีม", translations); got != "面霜罐" {
		t.Fatalf("expected chinese translation, got %q", got)
	}
}

func TestResolvePrimaryAlwaysReturnsPrimary(t *testing.T) {
	translations := map[Locale]string{LocaleEnglish: "Cream Jar"}

	if got := Resolve(LocaleThai, "กระปุกครีม", translations); got != "กระปุกครีม" {
		t.Fatalf("expected primary value, got %q", got)
	}
}

func TestResolveFallsBackWhenTranslationMissingOrEmpty(t *testing.T) {
	cases := []struct {
		name         string
		translations map[Locale]string
	}{
		{name: "nil map", translations: nil},
		{name: "absent key", translations: map[Locale]string{LocaleEnglish: "Cream Jar"}},
		{name: "empty string", translations: map[Locale]string{LocaleChinese: ""}},
		{name: "whitespace only", translations: map[Locale]string{LocaleChinese: "   "}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Resolve(LocaleChinese, "กระปุกครีม", tc.translations); got != "กระปุกครีม" {
				t.Fatalf("expected fallback to primary, got %q", got)
			}
		})
	}
}

func TestResolveChineseDoesNotFallBackThroughEnglish(t *testing.T) {
	// Only an English translation exists; a Chinese request must land on
	// the primary value, not the English one.
	translations := map[Locale]string{LocaleEnglish: "Cream Jar"}
	if got := Resolve(LocaleChinese, "กระปุกครีม", translations); got != "กระปุกครีม" {
		t.Fatalf("expected primary value, got %q", got)
	}
}

func TestNormalize(t *testing.T) {
	cases := map[string]Locale{
		"th":    LocaleThai,
		"en":    LocaleEnglish,
		"EN-us": LocaleEnglish,
		"zh":    LocaleChinese,
		"zh-CN": LocaleChinese,
		"":      LocaleThai,
		"fr":    LocaleThai,
		" de ":  LocaleThai,
	}
	for raw, want := range cases {
		if got := Normalize(raw); got != want {
			t.Fatalf("Normalize(%q) = %q, want %q", raw, got, want)
		}
	}
}
