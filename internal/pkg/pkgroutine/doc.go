// Package pkgroutine owns the service's background goroutines.
//
// A Manager bounds how many run at once, names each one for logs, turns a
// panic into an error for that task only, and lets shutdown wait for all of
// them. The dashboard's pipeline stepper is the long-lived task it runs.
package pkgroutine
