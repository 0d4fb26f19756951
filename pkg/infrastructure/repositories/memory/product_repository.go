package memory

import (
	"sync"

	"github.com/vsinha/rxprocure/pkg/domain/apperror"
	"github.com/vsinha/rxprocure/pkg/domain/entities"
	"github.com/vsinha/rxprocure/pkg/domain/repositories"
)

// ProductRepository provides in-memory product storage.
// Reads return copies so callers never share offer slices with the store.
type ProductRepository struct {
	mu          sync.RWMutex
	products    []entities.Product
	productsMap map[entities.ProductID]int
}

// NewProductRepository creates a new in-memory product repository
func NewProductRepository(expectedProducts int) *ProductRepository {
	return &ProductRepository{
		products:    make([]entities.Product, 0, expectedProducts),
		productsMap: make(map[entities.ProductID]int, expectedProducts),
	}
}

// Verify interface compliance
var _ repositories.ProductRepository = (*ProductRepository)(nil)

// LoadProducts loads products into the repository. A product with an id that
// is already present replaces the stored one.
func (r *ProductRepository) LoadProducts(products []*entities.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, product := range products {
		r.addProduct(*product)
	}
	return nil
}

// AddOffers appends supplier offers to a stored product
func (r *ProductRepository) AddOffers(id entities.ProductID, offers []entities.SupplierOffer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	index, exists := r.productsMap[id]
	if !exists {
		return apperror.NewProductNotFound(string(id))
	}

	product := &r.products[index]
	merged := make([]entities.SupplierOffer, 0, len(product.Offers)+len(offers))
	merged = append(merged, product.Offers...)
	merged = append(merged, offers...)
	product.Offers = merged
	return nil
}

// GetProduct returns a product by id
func (r *ProductRepository) GetProduct(id entities.ProductID) (*entities.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, exists := r.productsMap[id]
	if !exists {
		return nil, apperror.NewProductNotFound(string(id))
	}
	return cloneProduct(r.products[index]), nil
}

// GetAllProducts returns all products in load order
func (r *ProductRepository) GetAllProducts() ([]*entities.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]*entities.Product, 0, len(r.products))
	for i := range r.products {
		products = append(products, cloneProduct(r.products[i]))
	}
	return products, nil
}

// Count returns the number of stored products
func (r *ProductRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.products)
}

func (r *ProductRepository) addProduct(product entities.Product) {
	if index, exists := r.productsMap[product.ID]; exists {
		r.products[index] = product
		return
	}
	r.productsMap[product.ID] = len(r.products)
	r.products = append(r.products, product)
}

func cloneProduct(product entities.Product) *entities.Product {
	offers := make([]entities.SupplierOffer, len(product.Offers))
	copy(offers, product.Offers)
	product.Offers = offers
	return &product
}
