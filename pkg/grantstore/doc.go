// Package grantstore persists OAuth grants (authorization codes, refresh
// tokens, reference tokens, device codes and user consent) behind opaque
// handles.
//
// Every grant kind is a [Store] configured with its own grant type. The
// stores share a single [goidc.PersistedGrantManager], which only sees
// hashed keys and serialized payloads:
//
//	manager := mongodb.NewPersistedGrantManager(db)
//	tokens, err := grantstore.NewReferenceTokenStore(
//		grantstore.WithPersistedGrantManager(manager),
//	)
//	handle, err := tokens.StoreReferenceToken(ctx, token)
//
// When no manager is informed, grants are kept in memory.
package grantstore
