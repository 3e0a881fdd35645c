package firestore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/sangkips/retailpos-api/internal/domain/entity"
)

type settingsRepository struct {
	client *firestore.Client
}

func (r *settingsRepository) ref() *firestore.DocumentRef {
	return r.client.Collection(settingsCollection).Doc(entity.CompanySettingsID)
}

func (r *settingsRepository) GetCompany(ctx context.Context) (*entity.CompanySettings, error) {
	snap, err := r.ref().Get(ctx)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var settings entity.CompanySettings
	if err := snap.DataTo(&settings); err != nil {
		return nil, fmt.Errorf("decode company settings: %w", err)
	}
	settings.ID = entity.CompanySettingsID
	return &settings, nil
}

func (r *settingsRepository) SaveCompany(ctx context.Context, settings *entity.CompanySettings) error {
	settings.ID = entity.CompanySettingsID
	settings.UpdatedAt = time.Now()
	_, err := r.ref().Set(ctx, settings)
	return err
}

type authorizedUserRepository struct {
	client *firestore.Client
}

func (r *authorizedUserRepository) doc(email string) *firestore.DocumentRef {
	return r.client.Collection(usersCollection).Doc(strings.ToLower(strings.TrimSpace(email)))
}

func decodeAuthorizedUser(snap *firestore.DocumentSnapshot) (entity.AuthorizedUser, error) {
	var u entity.AuthorizedUser
	if err := snap.DataTo(&u); err != nil {
		return u, fmt.Errorf("decode authorized user %s: %w", snap.Ref.ID, err)
	}
	u.Email = snap.Ref.ID
	return u, nil
}

func (r *authorizedUserRepository) GetByEmail(ctx context.Context, email string) (*entity.AuthorizedUser, error) {
	snap, err := r.doc(email).Get(ctx)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u, err := decodeAuthorizedUser(snap)
	return &u, err
}

func (r *authorizedUserRepository) List(ctx context.Context) ([]entity.AuthorizedUser, error) {
	q := r.client.Collection(usersCollection).OrderBy(firestore.DocumentID, firestore.Asc)
	return collect(q.Documents(ctx), decodeAuthorizedUser)
}

func (r *authorizedUserRepository) Create(ctx context.Context, user *entity.AuthorizedUser) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if user.AddedAt.IsZero() {
		user.AddedAt = time.Now()
	}
	_, err := r.doc(user.Email).Create(ctx, user)
	return err
}

func (r *authorizedUserRepository) Delete(ctx context.Context, email string) error {
	_, err := r.doc(email).Delete(ctx)
	return err
}
