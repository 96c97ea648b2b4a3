package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go-creamery-pos/internal/events"
	"go-creamery-pos/internal/model"
	"go-creamery-pos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// memState is the in-memory database behind fakeStore. Rows are stored by
// value so callers never alias stored data.
type memState struct {
	ingredients map[uuid.UUID]model.Ingredient
	purchases   []model.Purchase
	recipes     map[uuid.UUID]model.Recipe
	products    map[uuid.UUID]model.Product
	batches     []model.ProductionBatch
	sales       []model.Sale
	tables      map[uuid.UUID]model.DiningTable
	orders      map[uuid.UUID]model.TableOrder
	movements   []model.StockMovement
}

func newMemState() memState {
	return memState{
		ingredients: map[uuid.UUID]model.Ingredient{},
		recipes:     map[uuid.UUID]model.Recipe{},
		products:    map[uuid.UUID]model.Product{},
		tables:      map[uuid.UUID]model.DiningTable{},
		orders:      map[uuid.UUID]model.TableOrder{},
	}
}

func (s memState) clone() memState {
	c := newMemState()
	for k, v := range s.ingredients {
		c.ingredients[k] = v
	}
	for k, v := range s.recipes {
		c.recipes[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.tables {
		c.tables[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	c.purchases = append(c.purchases, s.purchases...)
	c.batches = append(c.batches, s.batches...)
	c.sales = append(c.sales, s.sales...)
	c.movements = append(c.movements, s.movements...)
	return c
}

// fakeStore implements repository.Store. Transactions are serialized and
// roll back to a snapshot when fn fails.
type fakeStore struct {
	mu    sync.Mutex
	txMu  sync.Mutex
	state memState
	now   time.Time

	// failures injected by tests, keyed by operation name
	fail map[string]error
	// invoiceTaken marks invoice numbers as already used
	invoiceTaken map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		state:        newMemState(),
		now:          time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		fail:         map[string]error{},
		invoiceTaken: map[string]bool{},
	}
}

func (s *fakeStore) Ingredients() repository.IngredientRepository { return fakeIngredients{s} }
func (s *fakeStore) Purchases() repository.PurchaseRepository     { return fakePurchases{s} }
func (s *fakeStore) Recipes() repository.RecipeRepository         { return fakeRecipes{s} }
func (s *fakeStore) Products() repository.ProductRepository       { return fakeProducts{s} }
func (s *fakeStore) Productions() repository.ProductionRepository { return fakeProductions{s} }
func (s *fakeStore) Sales() repository.SaleRepository             { return fakeSales{s} }
func (s *fakeStore) Tables() repository.TableRepository           { return fakeTables{s} }
func (s *fakeStore) Movements() repository.MovementRepository     { return fakeMovements{s} }

func (s *fakeStore) Transaction(ctx context.Context, fn func(tx repository.Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.state.clone()
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.state = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *fakeStore) injected(op string) error {
	return s.fail[op]
}

func (s *fakeStore) stamp(base *model.BaseModel) {
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	s.now = s.now.Add(time.Second)
	base.CreatedAt = s.now
	base.UpdatedAt = s.now
}

// seeding helpers

func (s *fakeStore) addIngredient(name, unit string, stock, avg string) *model.Ingredient {
	s.mu.Lock()
	defer s.mu.Unlock()
	ing := model.Ingredient{
		ItemCode:       strings.ToUpper(name[:3]) + "-" + uuid.NewString()[:4],
		Name:           name,
		Unit:           unit,
		CurrentStock:   decimal.RequireFromString(stock),
		AvgCostPerUnit: decimal.RequireFromString(avg),
		MinStockAlert:  model.DefaultMinStockAlert,
	}
	s.stamp(&ing.BaseModel)
	s.state.ingredients[ing.ID] = ing
	return &ing
}

func (s *fakeStore) addProduct(name string, stock, cost, price string) *model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := model.Product{
		RecipeID:              uuid.New(),
		ProductName:           name,
		Unit:                  "scoop",
		CurrentStock:          decimal.RequireFromString(stock),
		ProductionCostPerUnit: decimal.RequireFromString(cost),
		SellingPrice:          decimal.RequireFromString(price),
		MinStockAlert:         model.DefaultMinStockAlert,
	}
	s.stamp(&p.BaseModel)
	s.state.products[p.ID] = p
	return &p
}

func (s *fakeStore) ingredient(id uuid.UUID) model.Ingredient {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ingredients[id]
}

func (s *fakeStore) product(id uuid.UUID) model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.products[id]
}

func (s *fakeStore) productForRecipe(recipeID uuid.UUID) (model.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.state.products {
		if p.RecipeID == recipeID {
			return p, true
		}
	}
	return model.Product{}, false
}

func (s *fakeStore) counts() (purchases, batches, sales, movements int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.purchases), len(s.state.batches), len(s.state.sales), len(s.state.movements)
}

func paginate[T any](rows []T, q repository.ListQuery) ([]T, int64) {
	total := int64(len(rows))
	start := q.Offset()
	if start > len(rows) {
		start = len(rows)
	}
	end := start + q.Limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end], total
}

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// ingredients

type fakeIngredients struct{ s *fakeStore }

func (r fakeIngredients) Create(ctx context.Context, ing *model.Ingredient) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.state.ingredients {
		if other.ItemCode == ing.ItemCode {
			return repository.ErrDuplicate
		}
	}
	r.s.stamp(&ing.BaseModel)
	r.s.state.ingredients[ing.ID] = *ing
	return nil
}

func (r fakeIngredients) UpdateDetails(ctx context.Context, ing *model.Ingredient) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.state.ingredients[ing.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.ItemCode = ing.ItemCode
	stored.Name = ing.Name
	stored.Category = ing.Category
	stored.Unit = ing.Unit
	stored.MinStockAlert = ing.MinStockAlert
	stored.Image = ing.Image
	stored.UpdatedBy = ing.UpdatedBy
	r.s.state.ingredients[ing.ID] = stored
	return nil
}

func (r fakeIngredients) FindByID(ctx context.Context, id uuid.UUID) (*model.Ingredient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ing, ok := r.s.state.ingredients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &ing, nil
}

func (r fakeIngredients) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Ingredient, error) {
	return r.FindByID(ctx, id)
}

func (r fakeIngredients) FindByItemCode(ctx context.Context, code string) (*model.Ingredient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, ing := range r.s.state.ingredients {
		if ing.ItemCode == code {
			found := ing
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r fakeIngredients) List(ctx context.Context, q repository.ListQuery) ([]model.Ingredient, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var rows []model.Ingredient
	for _, ing := range r.s.state.ingredients {
		if q.Search == "" || contains(ing.Name, q.Search) || contains(ing.ItemCode, q.Search) {
			rows = append(rows, ing)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	page, total := paginate(rows, q)
	return page, total, nil
}

func (r fakeIngredients) AdjustStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal, updatedBy string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ing, ok := r.s.state.ingredients[id]
	if !ok {
		return repository.ErrNotFound
	}
	if ing.CurrentStock.Add(delta).IsNegative() {
		return repository.ErrInsufficientStock
	}
	ing.CurrentStock = ing.CurrentStock.Add(delta)
	ing.UpdatedBy = updatedBy
	r.s.state.ingredients[id] = ing
	return nil
}

func (r fakeIngredients) UpdateCosting(ctx context.Context, id uuid.UUID, stock, avgCost decimal.Decimal, updatedBy string) error {
	if err := r.s.injected("ingredients.UpdateCosting"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ing, ok := r.s.state.ingredients[id]
	if !ok {
		return repository.ErrNotFound
	}
	ing.CurrentStock = stock
	ing.AvgCostPerUnit = avgCost
	ing.UpdatedBy = updatedBy
	r.s.state.ingredients[id] = ing
	return nil
}

func (r fakeIngredients) CountLowStock(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, ing := range r.s.state.ingredients {
		if ing.IsLowStock() {
			n++
		}
	}
	return n, nil
}

// purchases

type fakePurchases struct{ s *fakeStore }

func (r fakePurchases) Create(ctx context.Context, p *model.Purchase) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.stamp(&p.BaseModel)
	r.s.state.purchases = append(r.s.state.purchases, *p)
	return nil
}

func (r fakePurchases) List(ctx context.Context, ingredientID *uuid.UUID, q repository.ListQuery) ([]model.Purchase, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var rows []model.Purchase
	for i := len(r.s.state.purchases) - 1; i >= 0; i-- {
		p := r.s.state.purchases[i]
		if ingredientID == nil || p.IngredientID == *ingredientID {
			rows = append(rows, p)
		}
	}
	page, total := paginate(rows, q)
	return page, total, nil
}

// recipes

type fakeRecipes struct{ s *fakeStore }

func (r fakeRecipes) Create(ctx context.Context, recipe *model.Recipe) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.state.recipes {
		if other.RecipeName == recipe.RecipeName {
			return repository.ErrDuplicate
		}
	}
	r.s.stamp(&recipe.BaseModel)
	stored := *recipe
	stored.Lines = append([]model.RecipeLine(nil), recipe.Lines...)
	r.s.state.recipes[recipe.ID] = stored
	return nil
}

func (r fakeRecipes) Update(ctx context.Context, recipe *model.Recipe) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.state.recipes[recipe.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *recipe
	stored.Lines = append([]model.RecipeLine(nil), recipe.Lines...)
	r.s.state.recipes[recipe.ID] = stored
	return nil
}

func (r fakeRecipes) Delete(ctx context.Context, id uuid.UUID, deletedBy string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.state.recipes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.state.recipes, id)
	return nil
}

func (r fakeRecipes) FindByID(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	recipe, ok := r.s.state.recipes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	recipe.Lines = append([]model.RecipeLine(nil), recipe.Lines...)
	return &recipe, nil
}

func (r fakeRecipes) FindByName(ctx context.Context, name string, excludeID *uuid.UUID) (*model.Recipe, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, recipe := range r.s.state.recipes {
		if recipe.RecipeName != name {
			continue
		}
		if excludeID != nil && recipe.ID == *excludeID {
			continue
		}
		found := recipe
		return &found, nil
	}
	return nil, repository.ErrNotFound
}

func (r fakeRecipes) List(ctx context.Context, q repository.ListQuery) ([]model.Recipe, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var rows []model.Recipe
	for _, recipe := range r.s.state.recipes {
		if q.Search == "" || contains(recipe.RecipeName, q.Search) {
			rows = append(rows, recipe)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	page, total := paginate(rows, q)
	return page, total, nil
}

// products

type fakeProducts struct{ s *fakeStore }

func (r fakeProducts) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.state.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r fakeProducts) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return r.FindByID(ctx, id)
}

func (r fakeProducts) EnsureForRecipe(ctx context.Context, seed *model.Product) (*model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.state.products {
		if p.RecipeID == seed.RecipeID {
			found := p
			return &found, nil
		}
	}
	r.s.stamp(&seed.BaseModel)
	r.s.state.products[seed.ID] = *seed
	created := *seed
	return &created, nil
}

func (r fakeProducts) FindAll(ctx context.Context) ([]model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var rows []model.Product
	for _, p := range r.s.state.products {
		rows = append(rows, p)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ProductName < rows[j].ProductName })
	return rows, nil
}

func (r fakeProducts) FindSellable(ctx context.Context) ([]model.Product, error) {
	all, _ := r.FindAll(ctx)
	var rows []model.Product
	for _, p := range all {
		if p.IsSellable() {
			rows = append(rows, p)
		}
	}
	return rows, nil
}

func (r fakeProducts) UpdateDetails(ctx context.Context, product *model.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.state.products[product.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.ProductName = product.ProductName
	stored.Unit = product.Unit
	stored.MinStockAlert = product.MinStockAlert
	stored.Image = product.Image
	stored.UpdatedBy = product.UpdatedBy
	r.s.state.products[product.ID] = stored
	return nil
}

func (r fakeProducts) UpdatePrice(ctx context.Context, id uuid.UUID, price decimal.Decimal, updatedBy string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.state.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.SellingPrice = price
	p.UpdatedBy = updatedBy
	r.s.state.products[id] = p
	return nil
}

func (r fakeProducts) AdjustStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal, updatedBy string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.state.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	if p.CurrentStock.Add(delta).IsNegative() {
		return repository.ErrInsufficientStock
	}
	p.CurrentStock = p.CurrentStock.Add(delta)
	p.UpdatedBy = updatedBy
	r.s.state.products[id] = p
	return nil
}

func (r fakeProducts) UpdateCosting(ctx context.Context, id uuid.UUID, stock, costPerUnit decimal.Decimal, updatedBy string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.state.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.CurrentStock = stock
	p.ProductionCostPerUnit = costPerUnit
	p.UpdatedBy = updatedBy
	r.s.state.products[id] = p
	return nil
}

// production batches

type fakeProductions struct{ s *fakeStore }

func (r fakeProductions) Create(ctx context.Context, batch *model.ProductionBatch) error {
	if err := r.s.injected("productions.Create"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.stamp(&batch.BaseModel)
	r.s.state.batches = append(r.s.state.batches, *batch)
	return nil
}

func (r fakeProductions) List(ctx context.Context, q repository.ListQuery) ([]model.ProductionBatch, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var rows []model.ProductionBatch
	for i := len(r.s.state.batches) - 1; i >= 0; i-- {
		rows = append(rows, r.s.state.batches[i])
	}
	page, total := paginate(rows, q)
	return page, total, nil
}

// sales

type fakeSales struct{ s *fakeStore }

func (r fakeSales) Create(ctx context.Context, sale *model.Sale) error {
	if err := r.s.injected("sales.Create"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.state.sales {
		if other.InvoiceNo == sale.InvoiceNo {
			return repository.ErrDuplicate
		}
	}
	r.s.stamp(&sale.BaseModel)
	r.s.state.sales = append(r.s.state.sales, *sale)
	return nil
}

func (r fakeSales) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sale := range r.s.state.sales {
		if sale.ID == id {
			found := sale
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r fakeSales) InvoiceExists(ctx context.Context, invoiceNo string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.invoiceTaken[invoiceNo] {
		return true, nil
	}
	for _, sale := range r.s.state.sales {
		if sale.InvoiceNo == invoiceNo {
			return true, nil
		}
	}
	return false, nil
}

func (r fakeSales) List(ctx context.Context, q repository.ListQuery) ([]model.Sale, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var rows []model.Sale
	for i := len(r.s.state.sales) - 1; i >= 0; i-- {
		sale := r.s.state.sales[i]
		if q.Search == "" || contains(sale.InvoiceNo, q.Search) {
			rows = append(rows, sale)
		}
	}
	page, total := paginate(rows, q)
	return page, total, nil
}

func (r fakeSales) Summary(ctx context.Context) (*repository.SalesSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	summary := &repository.SalesSummary{TotalRevenue: decimal.Zero, TotalProfit: decimal.Zero}
	for _, sale := range r.s.state.sales {
		summary.TotalRevenue = summary.TotalRevenue.Add(sale.TotalAmount)
		summary.TotalProfit = summary.TotalProfit.Add(sale.TotalProfit)
		summary.OrderCount++
	}
	return summary, nil
}

func (r fakeSales) DailyRevenue(ctx context.Context, since time.Time) ([]repository.DailyRevenue, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	byDay := map[string]*repository.DailyRevenue{}
	var days []string
	for _, sale := range r.s.state.sales {
		if sale.CreatedAt.Before(since) {
			continue
		}
		day := sale.CreatedAt.Format("2006-01-02")
		row, ok := byDay[day]
		if !ok {
			row = &repository.DailyRevenue{Date: day, Revenue: decimal.Zero, Profit: decimal.Zero}
			byDay[day] = row
			days = append(days, day)
		}
		row.Revenue = row.Revenue.Add(sale.TotalAmount)
		row.Profit = row.Profit.Add(sale.TotalProfit)
	}
	sort.Strings(days)
	out := make([]repository.DailyRevenue, 0, len(days))
	for _, day := range days {
		out = append(out, *byDay[day])
	}
	return out, nil
}

func (r fakeSales) TopProducts(ctx context.Context, limit int) ([]repository.TopProduct, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	byProduct := map[uuid.UUID]*repository.TopProduct{}
	for _, sale := range r.s.state.sales {
		for _, item := range sale.Items {
			row, ok := byProduct[item.ProductID]
			if !ok {
				row = &repository.TopProduct{ProductID: item.ProductID, ProductName: item.ProductName, Quantity: decimal.Zero, Revenue: decimal.Zero}
				byProduct[item.ProductID] = row
			}
			row.Quantity = row.Quantity.Add(item.Quantity)
			row.Revenue = row.Revenue.Add(item.LineTotal)
		}
	}
	out := make([]repository.TopProduct, 0, len(byProduct))
	for _, row := range byProduct {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Quantity.GreaterThan(out[j].Quantity) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r fakeSales) Recent(ctx context.Context, limit int) ([]model.Sale, error) {
	rows, _, err := r.List(ctx, repository.ListQuery{Page: 1, Limit: limit})
	return rows, err
}

// tables and orders

type fakeTables struct{ s *fakeStore }

func (r fakeTables) CreateTable(ctx context.Context, table *model.DiningTable) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.state.tables {
		if other.TableNo == table.TableNo {
			return repository.ErrDuplicate
		}
	}
	r.s.stamp(&table.BaseModel)
	r.s.state.tables[table.ID] = *table
	return nil
}

func (r fakeTables) ListTables(ctx context.Context) ([]model.DiningTable, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var rows []model.DiningTable
	for _, t := range r.s.state.tables {
		rows = append(rows, t)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].TableNo < rows[j].TableNo })
	return rows, nil
}

func (r fakeTables) FindTableByID(ctx context.Context, id uuid.UUID) (*model.DiningTable, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.state.tables[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (r fakeTables) FindTableByNo(ctx context.Context, tableNo int) (*model.DiningTable, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.state.tables {
		if t.TableNo == tableNo {
			found := t
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r fakeTables) SetTableActive(ctx context.Context, id uuid.UUID, active bool, updatedBy string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.state.tables[id]
	if !ok {
		return repository.ErrNotFound
	}
	t.IsActive = active
	t.UpdatedBy = updatedBy
	r.s.state.tables[id] = t
	return nil
}

func (r fakeTables) CreateOrder(ctx context.Context, order *model.TableOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.stamp(&order.BaseModel)
	stored := *order
	stored.Items = append([]model.TableOrderItem(nil), order.Items...)
	r.s.state.orders[order.ID] = stored
	return nil
}

func (r fakeTables) FindOrderByID(ctx context.Context, id uuid.UUID) (*model.TableOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.state.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	o.Items = append([]model.TableOrderItem(nil), o.Items...)
	return &o, nil
}

func (r fakeTables) FindOrderByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.TableOrder, error) {
	return r.FindOrderByID(ctx, id)
}

func (r fakeTables) ListOrdersByStatus(ctx context.Context, statuses ...model.OrderStatus) ([]model.TableOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	want := map[model.OrderStatus]bool{}
	for _, st := range statuses {
		want[st] = true
	}
	var rows []model.TableOrder
	for _, o := range r.s.state.orders {
		if want[o.Status] {
			rows = append(rows, o)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	return rows, nil
}

func (r fakeTables) UpdateOrder(ctx context.Context, order *model.TableOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.state.orders[order.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Status = order.Status
	stored.InvoiceNo = order.InvoiceNo
	stored.SaleID = order.SaleID
	stored.UpdatedBy = order.UpdatedBy
	r.s.state.orders[order.ID] = stored
	return nil
}

// movements

type fakeMovements struct{ s *fakeStore }

func (r fakeMovements) Create(ctx context.Context, movements ...*model.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range movements {
		r.s.stamp(&m.BaseModel)
		r.s.state.movements = append(r.s.state.movements, *m)
	}
	return nil
}

func (r fakeMovements) GetStockMovement(ctx context.Context, startDate, endDate time.Time) ([]repository.StockMovementData, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	byDay := map[string]*repository.StockMovementData{}
	var days []string
	for _, m := range r.s.state.movements {
		if m.CreatedAt.Before(startDate) || m.CreatedAt.After(endDate) {
			continue
		}
		day := m.CreatedAt.Format("2006-01-02")
		row, ok := byDay[day]
		if !ok {
			row = &repository.StockMovementData{Date: day, Inbound: decimal.Zero, Outbound: decimal.Zero}
			byDay[day] = row
			days = append(days, day)
		}
		if m.Quantity.IsPositive() {
			row.Inbound = row.Inbound.Add(m.Quantity)
		} else {
			row.Outbound = row.Outbound.Add(m.Quantity.Abs())
		}
	}
	sort.Strings(days)
	out := make([]repository.StockMovementData, 0, len(days))
	for _, day := range days {
		out = append(out, *byDay[day])
	}
	return out, nil
}

// recordingPublisher captures published events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, evt events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
}

func (p *recordingPublisher) actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Action
	}
	return out
}

// fixedInvoices hands out a scripted sequence of invoice numbers.
type fixedInvoices struct {
	mu      sync.Mutex
	numbers []string
	calls   int
}

func (g *fixedInvoices) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := g.numbers[g.calls%len(g.numbers)]
	g.calls++
	return n
}

// countingMenu is a MenuCache that counts invalidations.
type countingMenu struct {
	mu          sync.Mutex
	items       []model.MenuItem
	cached      bool
	invalidated int
}

func (m *countingMenu) GetMenu(context.Context) ([]model.MenuItem, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items, m.cached
}

func (m *countingMenu) SetMenu(_ context.Context, items []model.MenuItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items, m.cached = items, true
}

func (m *countingMenu) InvalidateMenu(context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items, m.cached = nil, false
	m.invalidated++
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
