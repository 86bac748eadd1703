package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/githubcj79/inventory-managment-system/internal/application/dto"
	"github.com/githubcj79/inventory-managment-system/internal/domain/entity"
)

// replenishmentWindow ventana de historial de salidas usada para priorizar.
const replenishmentWindow = 90 * 24 * time.Hour

// ReplenishmentSuggestions genera la lista de reposición sugerida: los registros
// con cantidad en o bajo su min_stock, con la cantidad de pedido para volver al
// doble del mínimo y el costo estimado a precio de catálogo. Se priorizan los
// productos con más salidas en los últimos 90 días y, a igual volumen, los de
// mayor déficit.
func (uc *InventoryUseCase) ReplenishmentSuggestions(ctx context.Context) ([]dto.ReplenishmentSuggestion, error) {
	items, err := uc.stockRepo.ListLow(ctx, nil)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []dto.ReplenishmentSuggestion{}, nil
	}

	// Salidas recientes por producto. El historial es solo para ordenar, así que
	// un libro vacío no impide sugerir.
	end := uc.clock.Now()
	movements, err := uc.movementRepo.ListByDateRange(ctx, end.Add(-replenishmentWindow), end)
	if err != nil {
		return nil, err
	}
	outByProduct := make(map[string]int64)
	for _, m := range movements {
		if m.Type == entity.MovementTypeOUT {
			outByProduct[m.ProductID] += m.Quantity
		}
	}

	suggestions := make([]dto.ReplenishmentSuggestion, 0, len(items))
	for _, it := range items {
		target := it.MinStock * 2
		suggested := target - it.Quantity
		if suggested < 0 {
			suggested = 0
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestion{
			ProductID:         it.ProductID,
			SKU:               it.ProductSKU,
			ProductName:       it.ProductName,
			StoreID:           it.StoreID,
			Quantity:          it.Quantity,
			MinStock:          it.MinStock,
			SuggestedOrderQty: suggested,
			EstimatedCost:     it.Price.Mul(decimal.NewFromInt(suggested)),
			UnitsSoldRecently: outByProduct[it.ProductID],
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.UnitsSoldRecently != b.UnitsSoldRecently {
			return a.UnitsSoldRecently > b.UnitsSoldRecently
		}
		return a.MinStock-a.Quantity > b.MinStock-b.Quantity
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
