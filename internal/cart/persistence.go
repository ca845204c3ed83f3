package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/azorix/solarstore/internal/domain"
	"github.com/azorix/solarstore/internal/storage"
)

// StorageKey is the fixed key the cart is persisted under.
const StorageKey = "azorix_cart_v1"

// kvPort implements Port on top of a key-value store, serializing the item
// list as a JSON array under a fixed key.
type kvPort struct {
	kv  storage.KV
	key string
}

// NewKVPort creates a persistence port backed by the given key-value store.
// An empty key defaults to StorageKey.
func NewKVPort(kv storage.KV, key string) Port {
	if key == "" {
		key = StorageKey
	}
	return &kvPort{kv: kv, key: key}
}

// persistedOffer is the stored form of domain.OfferDetail.
type persistedOffer struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	DiscountType  string  `json:"discountType"`
	DiscountValue float64 `json:"discountValue"`
	CouponCode    string  `json:"couponCode,omitempty"`
	Description   string  `json:"description,omitempty"`
	Terms         string  `json:"terms,omitempty"`
	Badge         string  `json:"badge,omitempty"`
}

// persistedItem is the stored form of domain.CartItem. Numeric fields decode
// as float64 so records written with fractional or missing values still
// coerce instead of failing the whole load.
type persistedItem struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Price    float64         `json:"price"`
	MRP      *float64        `json:"mrp,omitempty"`
	Image    string          `json:"image,omitempty"`
	Quantity float64         `json:"quantity"`
	Offer    *persistedOffer `json:"offer,omitempty"`
}

// Load reads and decodes the persisted item list. A missing key is an empty
// cart. Corrupt JSON or a wrong top-level shape returns an error so the
// store can fall back to empty; individual records are normalized rather
// than rejected.
func (p *kvPort) Load() ([]domain.CartItem, error) {
	raw, err := p.kv.Get(p.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cart state: %w", err)
	}

	var records []persistedItem
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("malformed cart state: %w", err)
	}

	items := make([]domain.CartItem, 0, len(records))
	for _, record := range records {
		if record.ID == "" {
			continue
		}
		items = append(items, normalizeRecord(record))
	}

	return items, nil
}

// Save encodes and writes the full item list.
func (p *kvPort) Save(items []domain.CartItem) error {
	records := make([]persistedItem, len(items))
	for i, item := range items {
		records[i] = toRecord(item)
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode cart state: %w", err)
	}

	if err := p.kv.Set(p.key, string(data)); err != nil {
		return fmt.Errorf("failed to write cart state: %w", err)
	}

	return nil
}

// normalizeRecord coerces a stored record into a valid CartItem: price
// defaults to 0 for non-finite or negative values, quantity normalizes to
// max(1, given), and a non-finite offer discount value becomes 0. Missing
// optional fields stay absent rather than becoming zero values.
func normalizeRecord(record persistedItem) domain.CartItem {
	item := domain.CartItem{
		ID:       record.ID,
		Title:    record.Title,
		Price:    coerceAmount(record.Price),
		Image:    record.Image,
		Quantity: coerceQuantity(record.Quantity),
	}

	if record.MRP != nil {
		mrp := coerceAmount(*record.MRP)
		item.MRP = &mrp
	}

	if record.Offer != nil {
		value := record.Offer.DiscountValue
		if math.IsNaN(value) || math.IsInf(value, 0) {
			value = 0
		}
		item.Offer = &domain.OfferDetail{
			ID:            record.Offer.ID,
			Title:         record.Offer.Title,
			DiscountType:  domain.DiscountType(record.Offer.DiscountType),
			DiscountValue: value,
			CouponCode:    record.Offer.CouponCode,
			Description:   record.Offer.Description,
			Terms:         record.Offer.Terms,
			Badge:         record.Offer.Badge,
		}
	}

	return item
}

func toRecord(item domain.CartItem) persistedItem {
	record := persistedItem{
		ID:       item.ID,
		Title:    item.Title,
		Price:    float64(item.Price),
		Image:    item.Image,
		Quantity: float64(item.Quantity),
	}

	if item.MRP != nil {
		mrp := float64(*item.MRP)
		record.MRP = &mrp
	}

	if item.Offer != nil {
		record.Offer = &persistedOffer{
			ID:            item.Offer.ID,
			Title:         item.Offer.Title,
			DiscountType:  string(item.Offer.DiscountType),
			DiscountValue: item.Offer.DiscountValue,
			CouponCode:    item.Offer.CouponCode,
			Description:   item.Offer.Description,
			Terms:         item.Offer.Terms,
			Badge:         item.Offer.Badge,
		}
	}

	return record
}

func coerceAmount(value float64) int64 {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return 0
	}
	return int64(math.Round(value))
}

func coerceQuantity(value float64) int64 {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 1 {
		return 1
	}
	return int64(math.Round(value))
}
