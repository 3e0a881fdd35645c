// Package firestore stores the domain collections in Cloud Firestore, one
// top-level collection per entity plus a counters collection.
package firestore

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"github.com/sangkips/retailpos-api/internal/domain/repository"
	"github.com/sangkips/retailpos-api/pkg/apperror"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	productsCollection   = "products"
	categoriesCollection = "product_categories"
	billsCollection      = "bills"
	settingsCollection   = "settings"
	usersCollection      = "authorized_users"
	countersCollection   = "counters"
)

// Store hands out repositories backed by one client.
type Store struct {
	client *firestore.Client
}

func NewStore(client *firestore.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Products() repository.ProductRepository {
	return &productRepository{client: s.client}
}

func (s *Store) Categories() repository.CategoryRepository {
	return &categoryRepository{client: s.client}
}

func (s *Store) Bills() repository.BillRepository {
	return &billRepository{client: s.client}
}

func (s *Store) Settings() repository.SettingsRepository {
	return &settingsRepository{client: s.client}
}

func (s *Store) AuthorizedUsers() repository.AuthorizedUserRepository {
	return &authorizedUserRepository{client: s.client}
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// storeError marks outages so the caller answers 503 and the client can retry
// the save. Other errors pass through.
func storeError(err error) error {
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded, codes.Aborted:
		return apperror.Wrap(apperror.ErrStoreUnavailable, err)
	}
	return err
}

// collect drains it, decoding each document with decode.
func collect[T any](it *firestore.DocumentIterator, decode func(*firestore.DocumentSnapshot) (T, error)) ([]T, error) {
	defer it.Stop()

	var out []T
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		v, err := decode(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}

// count runs a server-side count aggregation over q.
func count(ctx context.Context, q firestore.Query) (int64, error) {
	res, err := q.NewAggregationQuery().WithCount("all").Get(ctx)
	if err != nil {
		return 0, err
	}
	v, ok := res["all"].(*firestorepb.Value)
	if !ok {
		return 0, errors.New("firestore: count aggregation returned no value")
	}
	return v.GetIntegerValue(), nil
}
