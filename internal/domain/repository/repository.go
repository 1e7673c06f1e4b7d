// Package repository defines the persistence contracts between the domain
// and the document store. Handlers and derivation logic depend on these
// interfaces, not the Mongo-backed implementations.
//
// Every method returns the entity (or nothing) plus an error. A non-nil
// error is always an *apperror.Error: no store fault ever crosses a contract
// boundary raw, and a VALIDATION error always means nothing was written.
package repository
