package repositories

import "github.com/vsinha/rxprocure/pkg/domain/entities"

// ProductRepository provides access to catalog snapshots of products and
// their supplier offers
type ProductRepository interface {
	GetProduct(id entities.ProductID) (*entities.Product, error)
	GetAllProducts() ([]*entities.Product, error)
	LoadProducts(products []*entities.Product) error
	AddOffers(id entities.ProductID, offers []entities.SupplierOffer) error
}
