package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/githubcj79/inventory-managment-system/internal/application/dto"
	"github.com/githubcj79/inventory-managment-system/internal/domain"
	"github.com/githubcj79/inventory-managment-system/internal/domain/entity"
	"github.com/githubcj79/inventory-managment-system/internal/domain/repository"
)

// MovementUseCase consultas de solo lectura sobre el libro de movimientos.
// El registro de movimientos nuevos vive en el motor de inventario, que es quien
// garantiza la consistencia stock-libro.
type MovementUseCase struct {
	repo repository.MovementRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(repo repository.MovementRepository) *MovementUseCase {
	return &MovementUseCase{repo: repo}
}

// GetByID obtiene un movimiento. Distingue id malformado de ausente.
func (uc *MovementUseCase) GetByID(ctx context.Context, id string) (*dto.MovementResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrInvalidIdentifier
	}
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return ToMovementResponse(m), nil
}

// ByProduct lista los movimientos de un producto, el más reciente primero.
func (uc *MovementUseCase) ByProduct(ctx context.Context, productID string) ([]dto.MovementResponse, error) {
	if _, err := uuid.Parse(productID); err != nil {
		return nil, domain.ErrInvalidIdentifier
	}
	list, err := uc.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(list), nil
}

// ByType lista los movimientos de un tipo del conjunto cerrado {IN, OUT, TRANSFER}.
func (uc *MovementUseCase) ByType(ctx context.Context, movementType string) ([]dto.MovementResponse, error) {
	t := entity.MovementType(movementType)
	if !t.Valid() {
		return nil, domain.ErrInvalidMovementType
	}
	list, err := uc.repo.ListByType(ctx, t)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(list), nil
}

// ByDateRange lista los movimientos con timestamp dentro de [from, to].
func (uc *MovementUseCase) ByDateRange(ctx context.Context, from, to time.Time) ([]dto.MovementResponse, error) {
	list, err := uc.repo.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(list), nil
}

// ToMovementResponse formatea un movimiento para salida: id y productId siempre strings.
func ToMovementResponse(m *entity.Movement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		Type:          string(m.Type),
		Quantity:      m.Quantity,
		SourceStoreID: m.SourceStoreID,
		TargetStoreID: m.TargetStoreID,
		Reference:     m.Reference,
		Notes:         m.Notes,
		UnitPrice:     m.UnitPrice,
		Timestamp:     m.Timestamp,
	}
}

func toMovementResponses(list []*entity.Movement) []dto.MovementResponse {
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *ToMovementResponse(m))
	}
	return items
}
