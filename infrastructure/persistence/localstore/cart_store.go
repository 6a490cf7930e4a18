// Package localstore persists the device-resident cart snapshot between
// runs, the way browser storage keeps the anonymous cart across page
// reloads. The whole snapshot lives as one JSON array under a single fixed
// key (a file in the data directory).
package localstore

import (
	"encoding/json"
	"os"
	"path/filepath"

	"sweetshop-backend/domain/cart"

	"go.uber.org/zap"
)

// StorageKey is the fixed key the cart snapshot is stored under.
const StorageKey = "sweetshop_cart"

// CartStore is a file-backed local cart store.
type CartStore struct {
	path   string
	logger *zap.Logger
}

// NewCartStore creates a store rooted at dir. The directory is created on
// first save if missing.
func NewCartStore(dir string, logger *zap.Logger) *CartStore {
	return &CartStore{
		path:   filepath.Join(dir, StorageKey+".json"),
		logger: logger,
	}
}

// storedItem tolerates the legacy "id" key alongside the canonical
// "productId". Only productId is ever written back.
type storedItem struct {
	ProductID string  `json:"productId"`
	LegacyID  string  `json:"id,omitempty"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Load returns the stored snapshot. An absent file or corrupt contents
// yield an empty snapshot: local-store corruption is recovered silently,
// never surfaced to the caller.
func (s *CartStore) Load() cart.Snapshot {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to read local cart, starting empty",
				zap.String("path", s.path),
				zap.Error(err),
			)
		}
		return cart.Snapshot{}
	}

	var stored []storedItem
	if err := json.Unmarshal(data, &stored); err != nil {
		// Deserialization failure is a silent-recovery path. The detail
		// is kept visible to logs only.
		s.logger.Warn("local cart is corrupt, starting empty",
			zap.String("path", s.path),
			zap.Error(err),
		)
		return cart.Snapshot{}
	}

	items := make(cart.Snapshot, 0, len(stored))
	for _, it := range stored {
		id := it.ProductID
		if id == "" {
			id = it.LegacyID
		}
		if id == "" {
			continue
		}
		items = append(items, cart.LineItem{
			ProductID: id,
			Name:      it.Name,
			Image:     it.Image,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}
	return items
}

// Save overwrites the stored snapshot. Best effort: write failures are
// logged and swallowed.
func (s *CartStore) Save(items cart.Snapshot) {
	if items == nil {
		items = cart.Snapshot{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		s.logger.Warn("failed to encode local cart", zap.Error(err))
		return
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		s.logger.Warn("failed to create local cart dir", zap.Error(err))
		return
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		s.logger.Warn("failed to write local cart",
			zap.String("path", s.path),
			zap.Error(err),
		)
	}
}
