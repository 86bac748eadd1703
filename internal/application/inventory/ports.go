package inventory

import (
	"context"

	"github.com/githubcj79/inventory-managment-system/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Es lo que hace que la mutación de stock y el registro en el libro
// sean un solo paso observable: o ambos quedan, o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error) error
}
