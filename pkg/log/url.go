package log

import (
	"log/slog"
	"net/url"
	"strings"
)

var sensitiveQueryParams = []string{
	"X-Amz-Credential",
	"X-Amz-Signature",
	"X-Amz-Security-Token",
}

// ScrubbedURL masks userinfo and presigning parameters of rawURL.
func ScrubbedURL(name string, rawURL string) slog.Attr {
	u, err := url.Parse(rawURL)
	if err != nil {
		return slog.String(name, rawURL)
	}

	copy := u.JoinPath()

	if u.User != nil {
		copy.User = url.UserPassword("xxx", "xxx")
	}

	if u.RawQuery != "" {
		query := u.Query()
		for key := range query {
			for _, sensitive := range sensitiveQueryParams {
				if strings.EqualFold(key, sensitive) {
					query.Set(key, "xxx")
				}
			}
		}
		copy.RawQuery = query.Encode()
	}

	return slog.String(name, copy.String())
}
