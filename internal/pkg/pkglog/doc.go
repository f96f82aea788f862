// Package pkglog installs the service's slog JSON logger.
//
// Records use "ts" and "severity" keys, a trimmed internal/...:line source,
// and "service=godna". Records logged with a request context also carry the
// correlation id (_cID) and dashboard session id (session_id) stored by the
// router middleware or the chat consumer.
package pkglog
