package cart

// LineItem is a single product entry in a cart. Name, Image and Price are
// denormalized from the catalog at the time the item is added and are not
// re-fetched afterwards.
type LineItem struct {
	ProductID string  `json:"productId" dynamodbav:"productId" firestore:"productId"`
	Name      string  `json:"name" dynamodbav:"name" firestore:"name"`
	Image     string  `json:"image" dynamodbav:"image" firestore:"image"`
	Price     float64 `json:"price" dynamodbav:"price" firestore:"price"`
	Quantity  int     `json:"quantity" dynamodbav:"quantity" firestore:"quantity"`
}

// Snapshot is the full contents of one cart, ordered by insertion.
// ProductID is unique within a well-formed snapshot.
type Snapshot []LineItem

// Empty reports whether the snapshot has no items.
func (s Snapshot) Empty() bool {
	return len(s) == 0
}

// Quantity returns the total quantity of the given product, 0 if absent.
func (s Snapshot) Quantity(productID string) int {
	total := 0
	for _, item := range s {
		if item.ProductID == productID {
			total += item.Quantity
		}
	}
	return total
}

// Clone returns an independent copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	if s == nil {
		return nil
	}
	out := make(Snapshot, len(s))
	copy(out, s)
	return out
}

// Merge reconciles a remote snapshot with a local one at login time.
//
// The remote snapshot is the authoritative base: its items come first, in
// their existing order, and keep their denormalized name/image/price on
// conflict. Local items are scanned sequentially; an item whose ProductID
// already exists in the result adds its quantity to the existing entry,
// anything else is appended in local order. A ProductID duplicated inside
// the local snapshot itself is intentionally not collapsed up front: each
// occurrence is matched against the accumulating result one by one, so the
// second occurrence folds into whatever the first one produced.
func Merge(remote, local Snapshot) Snapshot {
	merged := make(Snapshot, len(remote))
	copy(merged, remote)

	index := make(map[string]int, len(merged))
	for i, item := range merged {
		// First occurrence wins the index slot.
		if _, ok := index[item.ProductID]; !ok {
			index[item.ProductID] = i
		}
	}

	for _, item := range local {
		if i, ok := index[item.ProductID]; ok {
			merged[i].Quantity += item.Quantity
			continue
		}
		merged = append(merged, item)
		index[item.ProductID] = len(merged) - 1
	}

	return merged
}
