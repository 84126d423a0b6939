// Package models contains the wire types shared by the catalog client,
// the search/pagination state machine, and both terminal front ends.
//
// Field names and JSON tags follow the backend REST contract exactly;
// see [Pack] for the central record type.
package models
