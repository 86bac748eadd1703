package inventory_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/githubcj79/inventory-managment-system/internal/application/inventory"
	"github.com/githubcj79/inventory-managment-system/internal/domain"
	"github.com/githubcj79/inventory-managment-system/internal/domain/entity"
	"github.com/githubcj79/inventory-managment-system/internal/domain/repository"
	"github.com/githubcj79/inventory-managment-system/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia. Reproducen la semántica de
// los adaptadores Postgres: Get devuelve (nil, nil) en ausencia, Increment es
// condicional (nunca deja cantidad negativa) y el fake de transacción restaura
// el estado previo cuando la función falla.
// ──────────────────────────────────────────────────────────────────────────────

type storeKey struct {
	productID string
	storeID   string
}

// ── Productos ────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	byID map[string]*entity.Product
}

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{byID: map[string]*entity.Product{}}
}

func (f *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	for _, existing := range f.byID {
		if existing.SKU == p.SKU {
			return domain.ErrDuplicateSKU
		}
	}
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	if p, ok := f.byID[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	for _, p := range f.byID {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	all := make([]*entity.Product, 0, len(f.byID))
	for _, p := range f.byID {
		cp := *p
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].SKU < all[j].SKU })
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (f *fakeProductRepo) Search(_ context.Context, query string) ([]*entity.Product, error) {
	q := strings.ToLower(query)
	var out []*entity.Product
	for _, p := range f.byID {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(p.SKU), q) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

// ── Stock ────────────────────────────────────────────────────────────────────

type fakeStockRepo struct {
	records  map[storeKey]*entity.StockRecord
	products *fakeProductRepo
	// beforeLockedRead corre justo antes de GetForUpdate. Simula a un escritor
	// concurrente que hace commit antes de que la lectura bloqueada tome la fila:
	// el lock hace que la lectura vea ese valor ya confirmado.
	beforeLockedRead func()
	lockedReads      int
}

var _ repository.StockRepository = (*fakeStockRepo)(nil)

func (f *fakeStockRepo) Get(_ context.Context, productID, storeID string) (*entity.StockRecord, error) {
	if r, ok := f.records[storeKey{productID, storeID}]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeStockRepo) GetForUpdate(ctx context.Context, productID, storeID string) (*entity.StockRecord, error) {
	if f.beforeLockedRead != nil {
		f.beforeLockedRead()
	}
	f.lockedReads++
	return f.Get(ctx, productID, storeID)
}

func (f *fakeStockRepo) Create(_ context.Context, record *entity.StockRecord) error {
	k := storeKey{record.ProductID, record.StoreID}
	if _, ok := f.records[k]; ok {
		return domain.ErrDuplicate
	}
	cp := *record
	f.records[k] = &cp
	return nil
}

func (f *fakeStockRepo) SetQuantity(_ context.Context, productID, storeID string, quantity int64) error {
	k := storeKey{productID, storeID}
	if r, ok := f.records[k]; ok {
		r.Quantity = quantity
		return nil
	}
	f.records[k] = &entity.StockRecord{
		ID:        uuid.New().String(),
		ProductID: productID,
		StoreID:   storeID,
		Quantity:  quantity,
	}
	return nil
}

func (f *fakeStockRepo) Increment(_ context.Context, productID, storeID string, delta, defaultMinStock int64) error {
	k := storeKey{productID, storeID}
	r, ok := f.records[k]
	if !ok {
		if delta < 0 {
			return domain.ErrInsufficientStock
		}
		f.records[k] = &entity.StockRecord{
			ID:        uuid.New().String(),
			ProductID: productID,
			StoreID:   storeID,
			Quantity:  delta,
			MinStock:  defaultMinStock,
		}
		return nil
	}
	if r.Quantity+delta < 0 {
		return domain.ErrInsufficientStock
	}
	r.Quantity += delta
	return nil
}

func (f *fakeStockRepo) item(r *entity.StockRecord) repository.StockItem {
	it := repository.StockItem{
		RecordID:  r.ID,
		ProductID: r.ProductID,
		StoreID:   r.StoreID,
		Quantity:  r.Quantity,
		MinStock:  r.MinStock,
	}
	if p, ok := f.products.byID[r.ProductID]; ok {
		it.ProductName = p.Name
		it.ProductSKU = p.SKU
		it.Price = p.Price
	}
	return it
}

func (f *fakeStockRepo) all() []repository.StockItem {
	items := make([]repository.StockItem, 0, len(f.records))
	for _, r := range f.records {
		items = append(items, f.item(r))
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].StoreID != items[j].StoreID {
			return items[i].StoreID < items[j].StoreID
		}
		return items[i].ProductID < items[j].ProductID
	})
	return items
}

func (f *fakeStockRepo) ListByStore(_ context.Context, storeID string) ([]repository.StockItem, error) {
	var out []repository.StockItem
	for _, it := range f.all() {
		if it.StoreID == storeID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeStockRepo) ListAll(_ context.Context) ([]repository.StockItem, error) {
	return f.all(), nil
}

func (f *fakeStockRepo) ListByProduct(_ context.Context, productID string) ([]*entity.StockRecord, error) {
	var out []*entity.StockRecord
	for _, r := range f.records {
		if r.ProductID == productID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StoreID < out[j].StoreID })
	return out, nil
}

func (f *fakeStockRepo) ListLow(_ context.Context, threshold *int64) ([]repository.StockItem, error) {
	var out []repository.StockItem
	for _, it := range f.all() {
		if threshold == nil && it.Quantity <= it.MinStock {
			out = append(out, it)
		}
		if threshold != nil && it.Quantity <= *threshold {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeStockRepo) CountByProduct(_ context.Context, productID string) (int64, error) {
	var n int64
	for _, r := range f.records {
		if r.ProductID == productID {
			n++
		}
	}
	return n, nil
}

func (f *fakeStockRepo) UpsertBatch(ctx context.Context, records []*entity.StockRecord) error {
	for _, r := range records {
		k := storeKey{r.ProductID, r.StoreID}
		if existing, ok := f.records[k]; ok {
			existing.Quantity = r.Quantity
			continue
		}
		cp := *r
		if cp.ID == "" {
			cp.ID = uuid.New().String()
		}
		f.records[k] = &cp
	}
	return nil
}

// ── Movimientos ──────────────────────────────────────────────────────────────

type fakeMovementRepo struct {
	list []*entity.Movement
}

var _ repository.MovementRepository = (*fakeMovementRepo)(nil)

func (f *fakeMovementRepo) Create(_ context.Context, m *entity.Movement) error {
	cp := *m
	f.list = append(f.list, &cp)
	return nil
}

func (f *fakeMovementRepo) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	for _, m := range f.list {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeMovementRepo) sorted(filter func(*entity.Movement) bool) []*entity.Movement {
	var out []*entity.Movement
	for _, m := range f.list {
		if filter(m) {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out
}

func (f *fakeMovementRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Movement, error) {
	return f.sorted(func(m *entity.Movement) bool { return m.ProductID == productID }), nil
}

func (f *fakeMovementRepo) ListByType(_ context.Context, t entity.MovementType) ([]*entity.Movement, error) {
	return f.sorted(func(m *entity.Movement) bool { return m.Type == t }), nil
}

func (f *fakeMovementRepo) ListByDateRange(_ context.Context, from, to time.Time) ([]*entity.Movement, error) {
	return f.sorted(func(m *entity.Movement) bool {
		return !m.Timestamp.Before(from) && !m.Timestamp.After(to)
	}), nil
}

func (f *fakeMovementRepo) SignedTotals(_ context.Context) ([]repository.LedgerTotal, error) {
	totals := map[storeKey]int64{}
	for _, m := range f.list {
		switch m.Type {
		case entity.MovementTypeIN:
			totals[storeKey{m.ProductID, *m.TargetStoreID}] += m.Quantity
		case entity.MovementTypeOUT:
			totals[storeKey{m.ProductID, *m.SourceStoreID}] -= m.Quantity
		case entity.MovementTypeTRANSFER:
			totals[storeKey{m.ProductID, *m.SourceStoreID}] -= m.Quantity
			totals[storeKey{m.ProductID, *m.TargetStoreID}] += m.Quantity
		}
	}
	out := make([]repository.LedgerTotal, 0, len(totals))
	for k, v := range totals {
		out = append(out, repository.LedgerTotal{ProductID: k.productID, StoreID: k.storeID, Total: v})
	}
	return out, nil
}

// ── Transacción ──────────────────────────────────────────────────────────────

// fakeTxRunner ejecuta la función directamente y, si falla, restaura el stock y
// el libro al estado previo (la semántica de rollback del TxRunner real).
type fakeTxRunner struct {
	products  *fakeProductRepo
	stock     *fakeStockRepo
	movements *fakeMovementRepo
}

var _ inventory.TxRunner = (*fakeTxRunner)(nil)

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
) error) error {
	stockSnap := make(map[storeKey]*entity.StockRecord, len(r.stock.records))
	for k, v := range r.stock.records {
		cp := *v
		stockSnap[k] = &cp
	}
	movSnap := append([]*entity.Movement(nil), r.movements.list...)

	if err := fn(r.movements, r.stock, r.products); err != nil {
		r.stock.records = stockSnap
		r.movements.list = movSnap
		return err
	}
	return nil
}

// ── Entorno de test ──────────────────────────────────────────────────────────

type testEnv struct {
	uc        *inventory.InventoryUseCase
	products  *fakeProductRepo
	stock     *fakeStockRepo
	movements *fakeMovementRepo
}

func newTestEnv(cfg inventory.Config) *testEnv {
	products := newFakeProductRepo()
	stock := &fakeStockRepo{records: map[storeKey]*entity.StockRecord{}, products: products}
	movements := &fakeMovementRepo{}
	tx := &fakeTxRunner{products: products, stock: stock, movements: movements}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	return &testEnv{
		uc:        inventory.NewInventoryUseCase(tx, products, stock, movements, cfg, log),
		products:  products,
		stock:     stock,
		movements: movements,
	}
}

// seedProduct registra un producto y devuelve su id.
func (e *testEnv) seedProduct(sku string) string {
	id := uuid.New().String()
	e.products.byID[id] = &entity.Product{
		ID:    id,
		SKU:   sku,
		Name:  "Producto " + sku,
		Price: decimal.NewFromInt(10),
	}
	return id
}

// seedStock crea un registro de stock directamente, sin pasar por el libro.
func (e *testEnv) seedStock(productID, storeID string, qty, minStock int64) {
	e.stock.records[storeKey{productID, storeID}] = &entity.StockRecord{
		ID:        uuid.New().String(),
		ProductID: productID,
		StoreID:   storeID,
		Quantity:  qty,
		MinStock:  minStock,
	}
}

// quantity lee la cantidad actual; ausencia significa cero.
func (e *testEnv) quantity(productID, storeID string) int64 {
	if r, ok := e.stock.records[storeKey{productID, storeID}]; ok {
		return r.Quantity
	}
	return 0
}
