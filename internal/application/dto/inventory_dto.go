package dto

import "github.com/shopspring/decimal"

// CreateInventoryRequest body para POST /api/inventory.
type CreateInventoryRequest struct {
	ProductID string `json:"productId"`
	StoreID   string `json:"storeId"`
	Quantity  *int64 `json:"quantity"`
	MinStock  *int64 `json:"minStock"`
}

// TransferStockRequest body para POST /api/inventory/transfer.
type TransferStockRequest struct {
	ProductID     string `json:"productId"`
	SourceStoreID string `json:"sourceStoreId"`
	TargetStoreID string `json:"targetStoreId"`
	Quantity      int64  `json:"quantity"`
}

// AdjustStockRequest body para PUT /api/inventory/adjust (sobreescritura manual).
type AdjustStockRequest struct {
	ProductID string `json:"productId"`
	Quantity  *int64 `json:"quantity"`
}

// BulkAdjustRequest body para PUT /api/inventory/bulk-adjust.
type BulkAdjustRequest struct {
	Items []AdjustStockRequest `json:"items"`
}

// ProductSummary datos del producto unidos a un registro de stock.
type ProductSummary struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	SKU   string          `json:"sku"`
	Price decimal.Decimal `json:"price"`
}

// StockItemResponse un registro de stock unido con su producto.
type StockItemResponse struct {
	ID       string         `json:"id"`
	StoreID  string         `json:"storeId"`
	Quantity int64          `json:"quantity"`
	MinStock int64          `json:"minStock"`
	Product  ProductSummary `json:"product"`
}

// LowStockAlertResponse un registro bajo el umbral, con el déficit para reponer.
type LowStockAlertResponse struct {
	StockItemResponse
	Deficit int64 `json:"deficit"`
}

// StoreQuantity cantidad de un producto en una tienda.
type StoreQuantity struct {
	StoreID  string `json:"storeId"`
	Quantity int64  `json:"quantity"`
	MinStock int64  `json:"minStock"`
}

// ProductStockResponse stock de un producto en todas las tiendas.
type ProductStockResponse struct {
	ProductID string          `json:"productId"`
	Total     int64           `json:"total"`
	Stores    []StoreQuantity `json:"stores"`
}

// StockLevelResponse clasificación del nivel de stock contra umbrales del caller.
type StockLevelResponse struct {
	ProductID    string `json:"productId"`
	Quantity     int64  `json:"quantity"`
	Status       string `json:"status"` // low, excess, normal
	MinThreshold int64  `json:"minThreshold"`
	MaxThreshold int64  `json:"maxThreshold"`
}

// ReplenishmentSuggestion una entrada de la lista de reposición sugerida.
type ReplenishmentSuggestion struct {
	ProductID         string          `json:"productId"`
	SKU               string          `json:"sku"`
	ProductName       string          `json:"productName"`
	StoreID           string          `json:"storeId"`
	Quantity          int64           `json:"quantity"`
	MinStock          int64           `json:"minStock"`
	SuggestedOrderQty int64           `json:"suggestedOrderQty"`
	EstimatedCost     decimal.Decimal `json:"estimatedCost"`
	UnitsSoldRecently int64           `json:"unitsSoldRecently"`
	Priority          int             `json:"priority"`
}

// StockDiscrepancy diferencia entre el total del libro y el stock materializado.
type StockDiscrepancy struct {
	ProductID     string `json:"productId"`
	StoreID       string `json:"storeId"`
	LedgerTotal   int64  `json:"ledgerTotal"`
	StockQuantity int64  `json:"stockQuantity"`
	Difference    int64  `json:"difference"`
}

// ReconciliationResponse resultado del chequeo libro-vs-stock.
type ReconciliationResponse struct {
	Consistent    bool               `json:"consistent"`
	Discrepancies []StockDiscrepancy `json:"discrepancies"`
}
