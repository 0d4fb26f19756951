package services

import (
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/shopspring/decimal"

	"github.com/vsinha/rxprocure/pkg/application/dto"
	"github.com/vsinha/rxprocure/pkg/domain/entities"
)

// MemoKey identifies a quote computation. Two keys are equal only when the
// product snapshot, quantity and target are the same.
type MemoKey struct {
	ProductID   entities.ProductID
	Quantity    entities.Quantity
	TargetPrice string
	Fingerprint uint64
}

// NewMemoKey builds the memo key of a quote request.
func NewMemoKey(product *entities.Product, quantity entities.Quantity, target decimal.NullDecimal) MemoKey {
	key := MemoKey{
		ProductID:   product.ID,
		Quantity:    quantity,
		Fingerprint: ProductFingerprint(product),
	}
	if target.Valid {
		key.TargetPrice = target.Decimal.String()
	}
	return key
}

// ProductFingerprint hashes the pricing-relevant state of a product. Offer
// order is part of the hash because it decides which of two equal-price
// offers is consumed first. Every field is length-prefixed, so supplier ids
// containing separator characters cannot make two offer sets collide.
func ProductFingerprint(product *entities.Product) uint64 {
	d := xxhash.New()
	writeField(d, product.PublicPrice.String())
	writeField(d, product.VATRatePercent.String())
	writeField(d, strconv.Itoa(len(product.Offers)))
	for _, offer := range product.Offers {
		writeField(d, string(offer.SupplierID))
		writeField(d, offer.UnitPrice.String())
		writeField(d, strconv.FormatInt(int64(offer.AvailableStock), 10))
	}
	return d.Sum64()
}

func writeField(d *xxhash.Digest, value string) {
	_, _ = d.WriteString(strconv.Itoa(len(value)))
	_, _ = d.WriteString(":")
	_, _ = d.WriteString(value)
}

// Memo is a bounded, concurrency-safe cache of computed quotes. When it is
// full the whole cache is dropped. A nil *Memo caches nothing.
type Memo struct {
	mu       sync.RWMutex
	capacity int
	entries  map[MemoKey]*dto.LineQuote
}

// NewMemo creates a memo holding up to capacity quotes. A capacity of zero
// disables memoization and returns nil.
func NewMemo(capacity int) *Memo {
	if capacity <= 0 {
		return nil
	}
	return &Memo{
		capacity: capacity,
		entries:  make(map[MemoKey]*dto.LineQuote, capacity),
	}
}

// Get returns the cached quote for key.
func (m *Memo) Get(key MemoKey) (*dto.LineQuote, bool) {
	if m == nil {
		return nil, false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	quote, ok := m.entries[key]
	return quote, ok
}

// Put stores a quote under key.
func (m *Memo) Put(key MemoKey, quote *dto.LineQuote) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.entries[key]; !exists && len(m.entries) >= m.capacity {
		clear(m.entries)
	}
	m.entries[key] = quote
}

// Len returns the number of cached quotes.
func (m *Memo) Len() int {
	if m == nil {
		return 0
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
