package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cloud.google.com/go/firestore"
	"github.com/sangkips/retailpos-api/internal/config"
	"google.golang.org/api/option"
)

// NewFirestoreClient opens the document store. Without a credentials file the
// client falls back to application default credentials.
func NewFirestoreClient(ctx context.Context, cfg *config.FirestoreConfig) (*firestore.Client, error) {
	if cfg.ProjectID == "" {
		return nil, errors.New("FIRESTORE_PROJECT_ID is required for the firestore store driver")
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to firestore: %w", err)
	}

	slog.Info("connected to Firestore", "project", cfg.ProjectID)
	return client, nil
}
