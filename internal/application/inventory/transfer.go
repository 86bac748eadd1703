package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/githubcj79/inventory-managment-system/internal/domain"
	"github.com/githubcj79/inventory-managment-system/internal/domain/entity"
	"github.com/githubcj79/inventory-managment-system/internal/domain/repository"
)

// TransferInput entrada para un traslado entre tiendas.
type TransferInput struct {
	ProductID     string
	SourceStoreID string
	TargetStoreID string
	Quantity      int64
}

// TransferStock mueve unidades de una tienda a otra: débito en origen, crédito en
// destino y un movimiento TRANSFER en el libro, los tres dentro de una transacción.
// El débito es la actualización condicional atómica del almacén — la re-validación
// de "no quedar negativo" ocurre en el momento de la mutación, no solo en la
// lectura, así que dos traslados concurrentes del mismo origen no pueden sobre-girar.
// La conservación vale por construcción: origen -n, destino +n, total sin cambio.
func (uc *InventoryUseCase) TransferStock(ctx context.Context, in TransferInput) error {
	if in.SourceStoreID == "" || in.TargetStoreID == "" || in.SourceStoreID == in.TargetStoreID {
		return domain.ErrInvalidTransfer
	}
	if in.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	if _, err := uc.requireProduct(ctx, in.ProductID); err != nil {
		return err
	}

	now := uc.clock.Now()
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		_ repository.ProductRepository,
	) error {
		// El minStock del origen se hereda como umbral por defecto si el registro
		// destino se crea en este traslado.
		source, err := stockRepo.Get(ctx, in.ProductID, in.SourceStoreID)
		if err != nil {
			return err
		}
		if source == nil || source.Quantity < in.Quantity {
			return domain.ErrInsufficientStock
		}
		if err := stockRepo.Increment(ctx, in.ProductID, in.SourceStoreID, -in.Quantity, 0); err != nil {
			return err
		}
		if err := stockRepo.Increment(ctx, in.ProductID, in.TargetStoreID, in.Quantity, source.MinStock); err != nil {
			return err
		}
		mov := &entity.Movement{
			ID:            uuid.New().String(),
			ProductID:     in.ProductID,
			Type:          entity.MovementTypeTRANSFER,
			Quantity:      in.Quantity,
			SourceStoreID: &in.SourceStoreID,
			TargetStoreID: &in.TargetStoreID,
			Timestamp:     now,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			// Stock ya movido dentro de la tx y el registro en el libro falló:
			// el rollback revierte todo, pero la condición amerita alerta porque
			// indica un problema en el libro, no en los datos del caller.
			uc.log.Error().Err(err).
				Str("product_id", in.ProductID).
				Str("source_store", in.SourceStoreID).
				Str("target_store", in.TargetStoreID).
				Int64("quantity", in.Quantity).
				Msg("traslado revertido: no se pudo registrar el movimiento en el libro")
			return err
		}
		return nil
	})
	return err
}

// CreateInventoryInput entrada para inicializar inventario de un producto en una tienda.
type CreateInventoryInput struct {
	ProductID string
	StoreID   string
	Quantity  int64
	MinStock  int64
}

// CreateInventory crea el registro inicial de stock de (producto, tienda) y registra
// el movimiento IN inicial, ambos en una transacción. Un registro ya existente para
// la clave es ErrDuplicate: la inicialización no es un upsert.
func (uc *InventoryUseCase) CreateInventory(ctx context.Context, in CreateInventoryInput) (string, error) {
	if in.StoreID == "" {
		return "", domain.ErrMissingField
	}
	if in.Quantity < 0 || in.MinStock < 0 {
		return "", domain.ErrInvalidQuantity
	}
	if _, err := uc.requireProduct(ctx, in.ProductID); err != nil {
		return "", err
	}

	now := uc.clock.Now()
	record := &entity.StockRecord{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		StoreID:   in.StoreID,
		Quantity:  in.Quantity,
		MinStock:  in.MinStock,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		_ repository.ProductRepository,
	) error {
		if err := stockRepo.Create(ctx, record); err != nil {
			return err
		}
		// El libro solo admite cantidades positivas; una inicialización en cero
		// no es un hecho que registrar.
		if in.Quantity == 0 {
			return nil
		}
		mov := &entity.Movement{
			ID:            uuid.New().String(),
			ProductID:     in.ProductID,
			Type:          entity.MovementTypeIN,
			Quantity:      in.Quantity,
			TargetStoreID: &in.StoreID,
			Notes:         "inventario inicial",
			Timestamp:     now,
		}
		return movRepo.Create(ctx, mov)
	})
	if err != nil {
		return "", err
	}
	return record.ID, nil
}
