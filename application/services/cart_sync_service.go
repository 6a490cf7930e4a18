package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"sweetshop-backend/application/ports"
	"sweetshop-backend/domain/cart"
	apperrors "sweetshop-backend/pkg/errors"
	"sweetshop-backend/pkg/observability"
)

// CartSyncService reconciles the device-resident cart with the per-user
// remote record. The UI is the sole writer on a device: each mutation runs
// to completion before the next one is dispatched, so no locking is done
// here. Two devices writing the same user's record concurrently race on
// the full overwrite and the last writer wins.
type CartSyncService struct {
	remote  ports.RemoteCartStore
	local   ports.LocalCartStore
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewCartSyncService creates the cart sync service.
func NewCartSyncService(
	remote ports.RemoteCartStore,
	local ports.LocalCartStore,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *CartSyncService {
	return &CartSyncService{
		remote:  remote,
		local:   local,
		metrics: metrics,
		logger:  logger,
	}
}

// SyncOnLogin merges the local snapshot into the user's remote cart at
// authentication time and mirrors the result to both stores.
//
// The remote snapshot is fetched first and wins all field conflicts; local
// quantities accumulate into it. The remote save happens before the local
// mirror: on remote failure the device snapshot is left untouched, so a
// retried login re-merges the same pre-merge quantities instead of
// double-counting an already-mirrored result. The merged snapshot is still
// returned alongside the error so the UI can keep operating on it; there
// is no retry loop here.
func (s *CartSyncService) SyncOnLogin(ctx context.Context, userID string, localItems cart.Snapshot) (cart.Snapshot, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("user id is required")
	}
	start := time.Now()

	remoteItems, err := s.remote.Load(ctx, userID)
	if err != nil {
		s.metrics.Count(ctx, observability.MetricStoreErrors)
		return nil, apperrors.Wrap(err, "failed to load remote cart")
	}

	merged := cart.Merge(remoteItems, localItems)

	s.logger.Info("cart merged on login",
		zap.String("userID", userID),
		zap.Int("remoteItems", len(remoteItems)),
		zap.Int("localItems", len(localItems)),
		zap.Int("mergedItems", len(merged)),
	)

	if err := s.remote.Save(ctx, userID, merged); err != nil {
		s.metrics.Count(ctx, observability.MetricStoreErrors)
		s.logger.Warn("merged cart not persisted remotely, returning in-memory result",
			zap.String("userID", userID),
			zap.Error(err),
		)
		return merged, err
	}

	// Mirror locally only once remote holds the merged record; both copies
	// then agree and a later login merge is a no-op.
	s.local.Save(merged)

	s.metrics.Count(ctx, observability.MetricCartMerges)
	s.metrics.Duration(ctx, observability.MetricMergeDuration, time.Since(start))
	return merged, nil
}

// Load fetches the user's remote snapshot. A first-time user gets an
// empty snapshot.
func (s *CartSyncService) Load(ctx context.Context, userID string) (cart.Snapshot, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("user id is required")
	}
	items, err := s.remote.Load(ctx, userID)
	if err != nil {
		s.metrics.Count(ctx, observability.MetricStoreErrors)
		return nil, err
	}
	return items, nil
}

// Save overwrites the user's cart in both stores. Post-login mutations
// write through to remote and mirror locally, keeping the two copies
// consistent until the next anonymous divergence.
func (s *CartSyncService) Save(ctx context.Context, userID string, items cart.Snapshot) error {
	if userID == "" {
		return apperrors.NewValidationError("user id is required")
	}
	if err := validateSnapshot(items); err != nil {
		return err
	}

	s.local.Save(items)
	if err := s.remote.Save(ctx, userID, items); err != nil {
		s.metrics.Count(ctx, observability.MetricStoreErrors)
		return err
	}
	return nil
}

// SaveLocal persists an anonymous (pre-login) cart mutation on the device
// only.
func (s *CartSyncService) SaveLocal(items cart.Snapshot) {
	s.local.Save(items)
}

// LoadLocal returns the device snapshot, empty when absent or corrupt.
func (s *CartSyncService) LoadLocal() cart.Snapshot {
	return s.local.Load()
}

// Clear empties the cart in both stores, e.g. after checkout.
func (s *CartSyncService) Clear(ctx context.Context, userID string) error {
	s.local.Save(cart.Snapshot{})
	if userID == "" {
		return nil
	}
	if err := s.remote.Delete(ctx, userID); err != nil {
		s.metrics.Count(ctx, observability.MetricStoreErrors)
		return err
	}
	return nil
}

func validateSnapshot(items cart.Snapshot) error {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item.ProductID == "" {
			return apperrors.NewValidationError("cart item is missing productId")
		}
		if item.Quantity <= 0 {
			return apperrors.NewValidationError("cart item quantity must be positive")
		}
		if _, ok := seen[item.ProductID]; ok {
			return apperrors.NewValidationError("duplicate productId in cart: " + item.ProductID)
		}
		seen[item.ProductID] = struct{}{}
	}
	return nil
}
