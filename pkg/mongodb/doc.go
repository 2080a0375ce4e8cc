// Package mongodb implements [goidc.PersistedGrantManager] on top of a
// MongoDB collection.
package mongodb
