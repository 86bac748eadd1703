package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/githubcj79/inventory-managment-system/internal/application/dto"
	"github.com/githubcj79/inventory-managment-system/internal/domain"
	"github.com/githubcj79/inventory-managment-system/internal/domain/entity"
	"github.com/githubcj79/inventory-managment-system/internal/domain/repository"
)

// ProductUseCase casos de uso del catálogo. El stock se maneja vía el motor de
// inventario; aquí solo identidad, unicidad de SKU y la guarda referencial de borrado.
type ProductUseCase struct {
	repo      repository.ProductRepository
	stockRepo repository.StockRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, stockRepo repository.StockRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, stockRepo: stockRepo}
}

// Create crea un producto. Los cinco campos son obligatorios y el SKU debe ser único.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	var missing []string
	if in.Name == nil || *in.Name == "" {
		missing = append(missing, "name")
	}
	if in.Description == nil {
		missing = append(missing, "description")
	}
	if in.Category == nil || *in.Category == "" {
		missing = append(missing, "category")
	}
	if in.Price == nil {
		missing = append(missing, "price")
	}
	if in.SKU == nil || *in.SKU == "" {
		missing = append(missing, "sku")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingField, strings.Join(missing, ", "))
	}
	if in.Price.IsNegative() {
		return nil, domain.ErrInvalidQuantity
	}

	existing, err := uc.repo.GetBySKU(ctx, *in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateSKU
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         *in.SKU,
		Name:        *in.Name,
		Description: *in.Description,
		Category:    *in.Category,
		Price:       *in.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	// El índice único respalda la verificación anterior contra creaciones concurrentes.
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto. Distingue id malformado (ErrInvalidIdentifier) de ausente (ErrNotFound).
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrInvalidIdentifier
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update aplica una actualización parcial. Si cambia el SKU, re-verifica unicidad
// contra los demás productos. Devuelve changed=false cuando ningún campo cambió
// efectivamente (no es un error).
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (changed bool, err error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, domain.ErrInvalidIdentifier
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if product == nil {
		return false, domain.ErrNotFound
	}

	if in.SKU != nil && *in.SKU != product.SKU {
		other, err := uc.repo.GetBySKU(ctx, *in.SKU)
		if err != nil {
			return false, err
		}
		if other != nil && other.ID != product.ID {
			return false, domain.ErrDuplicateSKU
		}
		product.SKU = *in.SKU
		changed = true
	}
	if in.Name != nil && *in.Name != product.Name {
		product.Name = *in.Name
		changed = true
	}
	if in.Description != nil && *in.Description != product.Description {
		product.Description = *in.Description
		changed = true
	}
	if in.Category != nil && *in.Category != product.Category {
		product.Category = *in.Category
		changed = true
	}
	if in.Price != nil && !in.Price.Equal(product.Price) {
		if in.Price.IsNegative() {
			return false, domain.ErrInvalidQuantity
		}
		product.Price = *in.Price
		changed = true
	}
	if !changed {
		return false, nil
	}

	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return false, err
	}
	return true, nil
}

// Delete elimina un producto solo si ningún registro de stock lo referencia.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrInvalidIdentifier
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	count, err := uc.stockRepo.CountByProduct(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrHasInventory
	}
	return uc.repo.Delete(ctx, id)
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, limit, skip int) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx, limit, skip)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// Search busca por subcadena (case-insensitive) en nombre, descripción y SKU.
func (uc *ProductUseCase) Search(ctx context.Context, query string) ([]dto.ProductResponse, error) {
	list, err := uc.repo.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
