package middleware

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const localeKey contextKey = "locale"

const (
	// LocaleFR is the site's default locale
	LocaleFR = "fr"
	LocaleEN = "en"
)

// Locale resolves the visitor's locale from the lang query parameter, the
// lang cookie, then the Accept-Language header, in that order. French is the
// default. An explicit query parameter is persisted in the cookie.
func Locale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		locale := ""

		if lang := r.URL.Query().Get("lang"); lang != "" {
			locale = normalizeLocale(lang)
			if locale != "" {
				http.SetCookie(w, &http.Cookie{
					Name:     "lang",
					Value:    locale,
					Path:     "/",
					MaxAge:   86400 * 365,
					SameSite: http.SameSiteLaxMode,
				})
			}
		}

		if locale == "" {
			if cookie, err := r.Cookie("lang"); err == nil {
				locale = normalizeLocale(cookie.Value)
			}
		}

		if locale == "" {
			locale = localeFromAcceptLanguage(r.Header.Get("Accept-Language"))
		}

		if locale == "" {
			locale = LocaleFR
		}

		ctx := context.WithValue(r.Context(), localeKey, locale)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// LocaleFromContext returns the resolved locale, defaulting to French
func LocaleFromContext(ctx context.Context) string {
	if locale, ok := ctx.Value(localeKey).(string); ok {
		return locale
	}
	return LocaleFR
}

func normalizeLocale(lang string) string {
	lang = strings.ToLower(lang)
	switch {
	case strings.HasPrefix(lang, LocaleFR):
		return LocaleFR
	case strings.HasPrefix(lang, LocaleEN):
		return LocaleEN
	default:
		return ""
	}
}

func localeFromAcceptLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		lang := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if locale := normalizeLocale(lang); locale != "" {
			return locale
		}
	}
	return ""
}
