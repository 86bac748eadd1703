package repository

import (
	"context"

	"github.com/githubcj79/inventory-managment-system/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los Get* devuelven (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	// Search busca por subcadena (case-insensitive) en nombre, descripción y SKU.
	Search(ctx context.Context, query string) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
