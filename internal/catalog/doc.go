// Package catalog holds the client-side rendering and filtering pipeline:
// an in-memory [Store] of the last fetched result set, load-more
// pagination over it (no re-fetch), and a [Controller] that turns user
// input into search requests and reconciles responses.
//
// Pagination invariants: the cursor resets to page 1 whenever the
// (query, exclude) pair changes; result sets are replaced wholesale,
// never patched; page windows are [(page-1)*20, page*20).
package catalog
