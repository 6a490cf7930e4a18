// Package firestore implements the remote cart store against Firestore,
// the alternate backend. Collection "carts", one document per user id,
// overwritten wholesale on every save, the same record contract as the
// DynamoDB adapter.
package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"sweetshop-backend/application/ports"
	"sweetshop-backend/domain/cart"
	apperrors "sweetshop-backend/pkg/errors"
	"sweetshop-backend/pkg/utils"
)

const cartsCollection = "carts"

// CartRepository implements ports.RemoteCartStore using Firestore.
type CartRepository struct {
	client *firestore.Client
	logger *zap.Logger
}

// NewCartRepository creates a Firestore-backed cart repository.
func NewCartRepository(client *firestore.Client, logger *zap.Logger) ports.RemoteCartStore {
	return &CartRepository{client: client, logger: logger}
}

// cartDoc is the stored document shape. The domain type is not stored
// directly so the wire schema can evolve independently.
type cartDoc struct {
	Items     []cart.LineItem `firestore:"items"`
	UpdatedAt string          `firestore:"updatedAt"`
}

func (r *CartRepository) col() *firestore.CollectionRef {
	return r.client.Collection(cartsCollection)
}

// Load fetches the user's snapshot. A missing document resolves to an
// empty snapshot, never an error.
func (r *CartRepository) Load(ctx context.Context, userID string) (cart.Snapshot, error) {
	snap, err := r.col().Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return cart.Snapshot{}, nil
		}
		r.logger.Error("firestore cart load failed",
			zap.String("userID", userID),
			zap.Error(err),
		)
		return nil, apperrors.NewStoreUnavailableError("load", err)
	}

	var doc cartDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, apperrors.NewInternalError("failed to decode cart document").WithCause(err)
	}
	if doc.Items == nil {
		return cart.Snapshot{}, nil
	}
	return doc.Items, nil
}

// Save overwrites the user's document with the full snapshot.
func (r *CartRepository) Save(ctx context.Context, userID string, items cart.Snapshot) error {
	if items == nil {
		items = cart.Snapshot{}
	}

	_, err := r.col().Doc(userID).Set(ctx, cartDoc{
		Items:     items,
		UpdatedAt: utils.NowRFC3339(),
	})
	if err != nil {
		r.logger.Error("firestore cart save failed",
			zap.String("userID", userID),
			zap.Error(err),
		)
		return apperrors.NewStoreUnavailableError("save", err)
	}
	return nil
}

// Delete removes the user's cart document.
func (r *CartRepository) Delete(ctx context.Context, userID string) error {
	_, err := r.col().Doc(userID).Delete(ctx)
	if err != nil && status.Code(err) != codes.NotFound {
		return apperrors.NewStoreUnavailableError("delete", err)
	}
	return nil
}
