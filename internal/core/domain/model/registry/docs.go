// Package registry contains the module code catalog: published
// (type, version) pairings with their code ids, publishers and action-fee
// schedules. Versions order totally under semantic versioning, so version
// constraints (exact, latest, latest-any) resolve deterministically.
package registry
