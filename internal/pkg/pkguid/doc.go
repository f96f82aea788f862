// Package pkguid provides helpers for generating unique identifiers.
//
// Sessions and correlation IDs use time-ordered UUIDv7 strings ([UUID]).
// Chat messages and contributions use Snowflake numbers ([Snowflake]), so
// sorting by ID sorts by creation time.
package pkguid
