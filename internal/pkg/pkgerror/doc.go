// Package pkgerror is the error taxonomy shared by the dashboard packages.
//
// An Error carries the message a user sees, a Type saying who is at fault
// and a Code the router maps to an HTTP status. The dashboard's user-facing
// failures are invalid input, invalid export request, unknown view key and
// missing session; From folds anything else into an internal error of the
// one request that hit it.
package pkgerror
