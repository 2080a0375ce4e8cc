// Package storage provides the default implementation of
// [goidc.PersistedGrantManager].
//
// The implementation stores grants in memory so when the server restarts all
// of them are lost.
package storage
