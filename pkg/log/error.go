package log

import (
	"fmt"
	"log/slog"
)

// Error formats err with its stack trace, when one was recorded.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}

	return slog.String("error", fmt.Sprintf("%+v", err))
}
