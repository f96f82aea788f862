package pkgconfig

import (
	"io"
	"time"
)

// Config is the read-only view of application configuration used by the
// app bootstrap and the modules.
type Config interface {
	io.Closer

	GetInt(key string) int64
	GetBool(key string) bool
	GetString(key string) string
	GetDuration(key string) time.Duration
	GetArray(key string) []string
}
