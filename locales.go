package lyonkit

import (
	"context"
	"net/http"
)

// GetLocales returns the translation messages of every language of the
// namespace, keyed by language code.
func (c *ReadOnlyClient) GetLocales(ctx context.Context) (LocaleMessages, error) {
	out, err := do[LocaleMessages](ctx, c.t, &call{id: "getLocales", method: http.MethodGet, path: "/locale"})
	if err != nil {
		return nil, err
	}
	if *out == nil {
		return LocaleMessages{}, nil
	}
	return *out, nil
}

// UpdateLocale replaces the translation messages of lang.
func (c *WriteClient) UpdateLocale(ctx context.Context, lang string, messages Object) (*Locale, error) {
	if messages == nil {
		messages = Object{}
	}
	return do[Locale](ctx, c.t, &call{
		id:     "updateLocale",
		method: http.MethodPut,
		path:   "/locale/{lang}",
		params: map[string]string{"lang": lang},
		body:   messages,
	})
}
