package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"

	"sweetshop-backend/application/ports"
	"sweetshop-backend/domain/cart"
	"sweetshop-backend/pkg/utils"
)

// CartRepository implements ports.RemoteCartStore against DynamoDB. One
// record per user, keyed by user id, overwritten wholesale on every save.
type CartRepository struct {
	store  *TableStore
	logger *zap.Logger
}

// NewCartRepository creates a cart repository over the given table.
func NewCartRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.RemoteCartStore {
	return &CartRepository{
		store:  NewTableStore(client, tableName, "id", logger),
		logger: logger,
	}
}

// cartRecord is the stored shape: { id, items, updatedAt }.
type cartRecord struct {
	ID        string          `dynamodbav:"id"`
	Items     []cart.LineItem `dynamodbav:"items"`
	UpdatedAt string          `dynamodbav:"updatedAt"`
}

// Load fetches the user's snapshot. A missing record is a first-time user:
// it resolves to an empty snapshot, never an error.
func (r *CartRepository) Load(ctx context.Context, userID string) (cart.Snapshot, error) {
	var record cartRecord
	found, err := r.store.Get(ctx, userID, &record)
	if err != nil {
		return nil, err
	}
	if !found {
		return cart.Snapshot{}, nil
	}
	if record.Items == nil {
		return cart.Snapshot{}, nil
	}
	return record.Items, nil
}

// Save fully replaces the user's record, stamping updatedAt. There is no
// partial update: a field missing from items is gone from the record.
func (r *CartRepository) Save(ctx context.Context, userID string, items cart.Snapshot) error {
	if items == nil {
		items = cart.Snapshot{}
	}
	err := r.store.Put(ctx, cartRecord{
		ID:        userID,
		Items:     items,
		UpdatedAt: utils.NowRFC3339(),
	})
	if err != nil {
		return err
	}

	r.logger.Debug("cart saved",
		zap.String("userID", userID),
		zap.Int("items", len(items)),
	)
	return nil
}

// Delete removes the user's cart record.
func (r *CartRepository) Delete(ctx context.Context, userID string) error {
	return r.store.Delete(ctx, userID)
}
