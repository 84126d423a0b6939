// Package services implements the HTTP client for the pack catalog backend.
//
// [PackService] is the concrete [CatalogService]. All calls are
// context-aware and non-blocking from the caller's perspective; errors are
// classified into network failures, HTTP status errors (including HTML
// error pages from intermediaries, which are read as text before any JSON
// decoding is attempted), and application-level {error} payloads whose
// message is surfaced verbatim.
package services
