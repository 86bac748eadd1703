package inventory

import (
	"context"

	"github.com/githubcj79/inventory-managment-system/internal/application/dto"
	"github.com/githubcj79/inventory-managment-system/internal/domain/repository"
)

// GetStoreInventory lista el stock de una tienda unido con los datos del producto.
func (uc *InventoryUseCase) GetStoreInventory(ctx context.Context, storeID string) ([]dto.StockItemResponse, error) {
	items, err := uc.stockRepo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	return toStockItemResponses(items), nil
}

// ListInventory lista todo el stock de todas las tiendas.
func (uc *InventoryUseCase) ListInventory(ctx context.Context) ([]dto.StockItemResponse, error) {
	items, err := uc.stockRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toStockItemResponses(items), nil
}

// GetProductStock devuelve el stock de un producto en todas las tiendas.
// Un producto sin registros tiene total cero: la ausencia significa cero, no error.
func (uc *InventoryUseCase) GetProductStock(ctx context.Context, productID string) (*dto.ProductStockResponse, error) {
	if _, err := uc.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	records, err := uc.stockRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductStockResponse{ProductID: productID, Stores: make([]dto.StoreQuantity, 0, len(records))}
	for _, r := range records {
		out.Total += r.Quantity
		out.Stores = append(out.Stores, dto.StoreQuantity{
			StoreID:  r.StoreID,
			Quantity: r.Quantity,
			MinStock: r.MinStock,
		})
	}
	return out, nil
}

// LowStockAlerts devuelve los registros con cantidad en o bajo su propio min_stock
// (threshold nil) o bajo un umbral explícito, con el déficit para reponer.
func (uc *InventoryUseCase) LowStockAlerts(ctx context.Context, threshold *int64) ([]dto.LowStockAlertResponse, error) {
	items, err := uc.stockRepo.ListLow(ctx, threshold)
	if err != nil {
		return nil, err
	}
	alerts := make([]dto.LowStockAlertResponse, 0, len(items))
	for _, it := range items {
		deficit := it.MinStock - it.Quantity
		if deficit < 0 {
			deficit = 0
		}
		alerts = append(alerts, dto.LowStockAlertResponse{
			StockItemResponse: toStockItemResponse(it),
			Deficit:           deficit,
		})
	}
	return alerts, nil
}

// Reconcile compara los totales con signo del libro contra el stock materializado,
// por (producto, tienda). Las operaciones corren en transacción, así que en régimen
// el resultado es consistente; los ajustes manuales sin registro en el libro
// (LogAdjustments desactivado) aparecen como discrepancias esperadas.
func (uc *InventoryUseCase) Reconcile(ctx context.Context) (*dto.ReconciliationResponse, error) {
	totals, err := uc.movementRepo.SignedTotals(ctx)
	if err != nil {
		return nil, err
	}
	stock, err := uc.stockRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	type key struct{ productID, storeID string }
	ledger := make(map[key]int64, len(totals))
	for _, t := range totals {
		ledger[key{t.ProductID, t.StoreID}] = t.Total
	}
	current := make(map[key]int64, len(stock))
	for _, s := range stock {
		current[key{s.ProductID, s.StoreID}] = s.Quantity
	}

	out := &dto.ReconciliationResponse{Consistent: true, Discrepancies: []dto.StockDiscrepancy{}}
	seen := make(map[key]bool, len(ledger))
	for k, total := range ledger {
		seen[k] = true
		if qty := current[k]; qty != total {
			out.Discrepancies = append(out.Discrepancies, dto.StockDiscrepancy{
				ProductID:     k.productID,
				StoreID:       k.storeID,
				LedgerTotal:   total,
				StockQuantity: qty,
				Difference:    qty - total,
			})
		}
	}
	for k, qty := range current {
		if !seen[k] && qty != 0 {
			out.Discrepancies = append(out.Discrepancies, dto.StockDiscrepancy{
				ProductID:     k.productID,
				StoreID:       k.storeID,
				LedgerTotal:   0,
				StockQuantity: qty,
				Difference:    qty,
			})
		}
	}
	if len(out.Discrepancies) > 0 {
		out.Consistent = false
		uc.log.Warn().
			Int("discrepancies", len(out.Discrepancies)).
			Msg("reconciliación libro-vs-stock con diferencias")
	}
	return out, nil
}

func toStockItemResponse(it repository.StockItem) dto.StockItemResponse {
	return dto.StockItemResponse{
		ID:       it.RecordID,
		StoreID:  it.StoreID,
		Quantity: it.Quantity,
		MinStock: it.MinStock,
		Product: dto.ProductSummary{
			ID:    it.ProductID,
			Name:  it.ProductName,
			SKU:   it.ProductSKU,
			Price: it.Price,
		},
	}
}

func toStockItemResponses(items []repository.StockItem) []dto.StockItemResponse {
	out := make([]dto.StockItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toStockItemResponse(it))
	}
	return out
}
