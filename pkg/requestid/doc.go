// Package requestid attaches a correlation identifier to every HTTP request
// so log records from the same dispatch can be tied together.
//
// The middleware reuses a well formed client supplied X-Request-ID header
// and generates a UUID otherwise. Handlers read the ID back with
// FromContext, or log it directly with Attr.
package requestid
