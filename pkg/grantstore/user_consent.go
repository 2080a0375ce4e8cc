package grantstore

import (
	"context"
	"errors"
	"strings"

	"github.com/luikyv/go-oidc-grants/pkg/goidc"
)

// consentSeparator joins the subject and the client in the consent handle.
// Subjects cannot contain it, which keeps the handle unambiguous even when a
// client id does.
const consentSeparator = "|"

var ErrInvalidConsentSubject = errors.New("the consent subject cannot contain " + consentSeparator)

// UserConsentStore persists the consent a user gave to a client. There is at
// most one consent per subject and client, so the pair is used as handle.
type UserConsentStore struct {
	store *Store[goidc.UserConsent]
}

func NewUserConsentStore(opts ...Option) (*UserConsentStore, error) {
	store, err := New[goidc.UserConsent](goidc.GrantUserConsent, opts...)
	if err != nil {
		return nil, err
	}
	return &UserConsentStore{store: store}, nil
}

func (s *UserConsentStore) StoreUserConsent(ctx context.Context, consent *goidc.UserConsent) error {
	if consent == nil {
		return ErrNilPayload
	}
	if strings.Contains(consent.SubjectID, consentSeparator) {
		return ErrInvalidConsentSubject
	}
	return s.store.Save(
		ctx,
		consentHandle(consent.SubjectID, consent.ClientID),
		*consent,
		goidc.GrantMeta{
			ClientID:  consent.ClientID,
			SubjectID: consent.SubjectID,
		},
		consent.CreatedAtTimestamp,
		consent.ExpiresAtTimestamp,
		0,
	)
}

// UserConsent returns nil if the subject never consented to the client.
func (s *UserConsentStore) UserConsent(ctx context.Context, subjectID, clientID string) (*goidc.UserConsent, error) {
	if strings.Contains(subjectID, consentSeparator) {
		return nil, nil
	}
	return s.store.Item(ctx, consentHandle(subjectID, clientID))
}

func (s *UserConsentStore) DeleteUserConsent(ctx context.Context, subjectID, clientID string) error {
	if strings.Contains(subjectID, consentSeparator) {
		return nil
	}
	return s.store.Delete(ctx, consentHandle(subjectID, clientID))
}

func consentHandle(subjectID, clientID string) string {
	return subjectID + consentSeparator + clientID
}
