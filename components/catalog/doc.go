// Package catalog exposes the remote coil catalog over net/http.
//
// GET and HEAD requests list the catalog, POST forwards a new coil definition.
// Responses are passed through from the calculation service unchanged; a
// failing upstream call answers 500 with a short JSON error body.
package catalog
