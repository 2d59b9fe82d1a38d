// Package preflight verifies the drive layout before project operations:
// category roots exist and are listable, the database location is writable,
// and the work drives have headroom. The doctor command renders the results.
package preflight
