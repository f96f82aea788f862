// Package pkgrouter is the HTTP edge of the dashboard: httprouter routes,
// the JSON envelope, file attachments for exports, and error mapping from
// pkgerror codes to statuses.
//
// Every route runs behind the same middleware: panic recovery, correlation
// and session ids in the context, and request logging that redacts
// credentials and never buffers uploads or downloads.
package pkgrouter
