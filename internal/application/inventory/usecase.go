package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/githubcj79/inventory-managment-system/internal/domain"
	"github.com/githubcj79/inventory-managment-system/internal/domain/entity"
	"github.com/githubcj79/inventory-managment-system/internal/domain/repository"
	"github.com/githubcj79/inventory-managment-system/pkg/logger"
)

// Config reglas configurables del coordinador.
type Config struct {
	// DefaultStoreID es la tienda implícita para RecordMovement, AdjustStock y
	// ValidateStockLevel.
	DefaultStoreID string
	// LogAdjustments decide si el ajuste manual también deja rastro en el libro.
	// El comportamiento histórico era no registrarlo; se expone como elección
	// explícita en vez de fijar cualquiera de los dos.
	LogAdjustments bool
}

// InventoryUseCase es el coordinador de consistencia: compone catálogo, stock y
// libro en operaciones multi-paso que preservan los invariantes (existencia del
// producto, stock no negativo, conservación en traslados, libro y stock nunca
// divergentes). Toda operación que muta stock y escribe en el libro corre dentro
// de una transacción del TxRunner.
type InventoryUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	stockRepo    repository.StockRepository
	movementRepo repository.MovementRepository
	cfg          Config
	log          *logger.Logger
	clock        monotonicClock
}

// NewInventoryUseCase construye el coordinador.
func NewInventoryUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	stockRepo repository.StockRepository,
	movementRepo repository.MovementRepository,
	cfg Config,
	log *logger.Logger,
) *InventoryUseCase {
	if cfg.DefaultStoreID == "" {
		cfg.DefaultStoreID = "main"
	}
	return &InventoryUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		stockRepo:    stockRepo,
		movementRepo: movementRepo,
		cfg:          cfg,
		log:          log,
	}
}

// requireProduct valida el id y la existencia del producto.
func (uc *InventoryUseCase) requireProduct(ctx context.Context, productID string) (*entity.Product, error) {
	if _, err := uuid.Parse(productID); err != nil {
		return nil, domain.ErrInvalidIdentifier
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

// RecordMovementInput entrada para registrar una entrada o salida sobre la tienda implícita.
type RecordMovementInput struct {
	ProductID string
	Type      string
	Quantity  int64
	Reference string
	Notes     string
	UnitPrice *decimal.Decimal
}

// RecordMovement registra un movimiento IN u OUT sobre la tienda implícita y aplica
// el delta con signo al stock, ambos en una transacción. Un TRANSFER debe ir por
// TransferStock, que exige tienda origen y destino. Para OUT, la verificación de
// stock y el decremento son la misma operación condicional en el almacén: una
// salida concurrente que agote el stock hace fallar esta con ErrInsufficientStock
// sin escribir nada en el libro.
func (uc *InventoryUseCase) RecordMovement(ctx context.Context, in RecordMovementInput) (string, error) {
	movType := entity.MovementType(in.Type)
	if movType != entity.MovementTypeIN && movType != entity.MovementTypeOUT {
		return "", domain.ErrInvalidMovementType
	}
	if in.Quantity <= 0 {
		return "", domain.ErrInvalidQuantity
	}
	if _, err := uc.requireProduct(ctx, in.ProductID); err != nil {
		return "", err
	}

	store := uc.cfg.DefaultStoreID
	mov := &entity.Movement{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		Type:      movType,
		Quantity:  in.Quantity,
		Reference: in.Reference,
		Notes:     in.Notes,
		UnitPrice: in.UnitPrice,
		Timestamp: uc.clock.Now(),
	}
	delta := in.Quantity
	if movType == entity.MovementTypeOUT {
		delta = -in.Quantity
		mov.SourceStoreID = &store
	} else {
		mov.TargetStoreID = &store
	}

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		_ repository.ProductRepository,
	) error {
		if err := stockRepo.Increment(ctx, in.ProductID, store, delta, 0); err != nil {
			return err
		}
		return movRepo.Create(ctx, mov)
	})
	if err != nil {
		return "", err
	}
	return mov.ID, nil
}

// AdjustStock sobreescribe la cantidad de la tienda implícita (corrección manual,
// no un delta). Con LogAdjustments activo, la sobreescritura y un movimiento
// compensatorio por el delta corren en una transacción; si no, es una sola
// operación de upsert sin rastro en el libro.
func (uc *InventoryUseCase) AdjustStock(ctx context.Context, productID string, quantity int64) error {
	if quantity < 0 {
		return domain.ErrInvalidQuantity
	}
	if _, err := uc.requireProduct(ctx, productID); err != nil {
		return err
	}
	store := uc.cfg.DefaultStoreID

	if !uc.cfg.LogAdjustments {
		return uc.stockRepo.SetQuantity(ctx, productID, store, quantity)
	}

	return uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		_ repository.ProductRepository,
	) error {
		// Lectura con bloqueo de fila: el delta compensatorio se calcula contra
		// la cantidad que la sobreescritura realmente reemplaza. Con una lectura
		// simple, un ajuste concurrente entre leer y escribir dejaría el delta
		// del libro desacoplado del cambio real de stock.
		current, err := stockRepo.GetForUpdate(ctx, productID, store)
		if err != nil {
			return err
		}
		var before int64
		if current != nil {
			before = current.Quantity
		}
		if err := stockRepo.SetQuantity(ctx, productID, store, quantity); err != nil {
			return err
		}
		delta := quantity - before
		if delta == 0 {
			return nil
		}
		mov := &entity.Movement{
			ID:        uuid.New().String(),
			ProductID: productID,
			Quantity:  delta,
			Notes:     "ajuste manual de stock",
			Timestamp: uc.clock.Now(),
		}
		if delta > 0 {
			mov.Type = entity.MovementTypeIN
			mov.TargetStoreID = &store
		} else {
			mov.Type = entity.MovementTypeOUT
			mov.Quantity = -delta
			mov.SourceStoreID = &store
		}
		return movRepo.Create(ctx, mov)
	})
}

// ValidateStockLevel clasifica el stock de la tienda implícita contra umbrales del
// caller: low (< min), excess (> max) o normal. Lectura pura, sin mutaciones.
func (uc *InventoryUseCase) ValidateStockLevel(ctx context.Context, productID string, minThreshold, maxThreshold int64) (*StockLevel, error) {
	if minThreshold < 0 || maxThreshold < 0 || minThreshold > maxThreshold {
		return nil, domain.ErrInvalidQuantity
	}
	if _, err := uc.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	record, err := uc.stockRepo.Get(ctx, productID, uc.cfg.DefaultStoreID)
	if err != nil {
		return nil, err
	}
	var quantity int64
	if record != nil {
		quantity = record.Quantity
	}
	status := "normal"
	switch {
	case quantity < minThreshold:
		status = "low"
	case quantity > maxThreshold:
		status = "excess"
	}
	return &StockLevel{
		ProductID:    productID,
		Quantity:     quantity,
		Status:       status,
		MinThreshold: minThreshold,
		MaxThreshold: maxThreshold,
	}, nil
}

// StockLevel resultado de ValidateStockLevel.
type StockLevel struct {
	ProductID    string
	Quantity     int64
	Status       string
	MinThreshold int64
	MaxThreshold int64
}

// BulkAdjustItem una entrada de BulkAdjust.
type BulkAdjustItem struct {
	ProductID string
	Quantity  int64
}

// BulkAdjust aplica varias sobreescrituras como todo-o-nada: primero una pasada de
// validación completa (cada producto existe, cada cantidad >= 0) sin mutar nada;
// si alguna entrada falla, cero mutaciones. Después, un solo upsert por lotes
// dentro de una transacción.
func (uc *InventoryUseCase) BulkAdjust(ctx context.Context, items []BulkAdjustItem) error {
	if len(items) == 0 {
		return nil
	}
	for _, it := range items {
		if it.Quantity < 0 {
			return domain.ErrInvalidQuantity
		}
		if _, err := uc.requireProduct(ctx, it.ProductID); err != nil {
			return err
		}
	}

	store := uc.cfg.DefaultStoreID
	records := make([]*entity.StockRecord, 0, len(items))
	for _, it := range items {
		records = append(records, &entity.StockRecord{
			ProductID: it.ProductID,
			StoreID:   store,
			Quantity:  it.Quantity,
		})
	}
	return uc.txRunner.Run(ctx, func(
		_ repository.MovementRepository,
		stockRepo repository.StockRepository,
		_ repository.ProductRepository,
	) error {
		return stockRepo.UpsertBatch(ctx, records)
	})
}
