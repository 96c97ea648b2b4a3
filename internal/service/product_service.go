package service

import (
	"context"
	"errors"
	"fmt"

	"go-creamery-pos/internal/costing"
	"go-creamery-pos/internal/events"
	"go-creamery-pos/internal/model"
	"go-creamery-pos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductService interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error)
	SetSellingPrice(ctx context.Context, id uuid.UUID, req *PriceRequest, userID string) (*model.Product, error)
	UpdateDetails(ctx context.Context, id uuid.UUID, req *ProductDetailsRequest, userID string) (*model.Product, error)
	AdjustStock(ctx context.Context, id uuid.UUID, req *StockAdjustmentRequest, userID string) (*model.Product, error)
	PublicMenu(ctx context.Context) ([]model.MenuItem, error)
}

type PriceRequest struct {
	SellingPrice decimal.Decimal `json:"selling_price" validate:"dgte0"`
}

type ProductDetailsRequest struct {
	ProductName   string           `json:"product_name" validate:"required,max=255"`
	Unit          string           `json:"unit" validate:"max=20"`
	MinStockAlert *decimal.Decimal `json:"min_stock_alert" validate:"omitempty,dgte0"`
	Image         string           `json:"image" validate:"max=512"`
}

type productService struct {
	store  repository.Store
	events events.Publisher
	menu   MenuCache
}

func NewProductService(store repository.Store, publisher events.Publisher, menu MenuCache) ProductService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	if menu == nil {
		menu = nopMenuCache{}
	}
	return &productService{store: store, events: publisher, menu: menu}
}

func (s *productService) ListProducts(ctx context.Context) ([]model.Product, error) {
	products, err := s.store.Products().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []model.Product{}
	}
	return products, nil
}

func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.store.Products().FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "Product")
	}
	return product, nil
}

func (s *productService) SetSellingPrice(ctx context.Context, id uuid.UUID, req *PriceRequest, userID string) (*model.Product, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	price := costing.Money(req.SellingPrice)
	if err := s.store.Products().UpdatePrice(ctx, id, price, userID); err != nil {
		return nil, lookupErr(err, "Product")
	}
	product, err := s.store.Products().FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "Product")
	}

	s.menu.InvalidateMenu(ctx)
	s.events.Publish(ctx, events.Event{
		Type:    events.TypeStock,
		Action:  "price_updated",
		Data:    product.ToMenuItem(),
		UserID:  userID,
		Message: fmt.Sprintf("Price of '%s' set to %s", product.ProductName, price.StringFixed(costing.MoneyPlaces)),
	})
	return product, nil
}

func (s *productService) UpdateDetails(ctx context.Context, id uuid.UUID, req *ProductDetailsRequest, userID string) (*model.Product, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	product, err := s.store.Products().FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "Product")
	}

	product.ProductName = req.ProductName
	if req.Unit != "" {
		product.Unit = req.Unit
	}
	if req.MinStockAlert != nil {
		product.MinStockAlert = costing.Quantity(*req.MinStockAlert)
	}
	product.Image = req.Image
	product.UpdatedBy = userID

	if err := s.store.Products().UpdateDetails(ctx, product); err != nil {
		return nil, lookupErr(err, "Product")
	}
	s.menu.InvalidateMenu(ctx)
	return product, nil
}

func (s *productService) AdjustStock(ctx context.Context, id uuid.UUID, req *StockAdjustmentRequest, userID string) (*model.Product, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	delta := costing.Quantity(req.Delta)
	if delta.IsZero() {
		return nil, invalidInput("Adjustment must not be zero")
	}

	var product *model.Product
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		p, err := tx.Products().FindByIDForUpdate(ctx, id)
		if err != nil {
			return lookupErr(err, "Product")
		}
		if err := (productLedger{tx: tx}).adjustStock(ctx, p, delta, model.MoveAdjust, "manual", req.Note, userID); err != nil {
			return err
		}
		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.menu.InvalidateMenu(ctx)
	s.events.Publish(ctx, events.Event{
		Type:    events.TypeStock,
		Action:  "product_adjusted",
		Data:    product,
		UserID:  userID,
		Message: fmt.Sprintf("Stock of '%s' adjusted by %s", product.ProductName, delta),
	})
	return product, nil
}

// PublicMenu lists what customers can order. Cost fields never leave this method.
func (s *productService) PublicMenu(ctx context.Context) ([]model.MenuItem, error) {
	if items, ok := s.menu.GetMenu(ctx); ok {
		return items, nil
	}

	products, err := s.store.Products().FindSellable(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]model.MenuItem, 0, len(products))
	for i := range products {
		if products[i].IsSellable() {
			items = append(items, products[i].ToMenuItem())
		}
	}
	s.menu.SetMenu(ctx, items)
	return items, nil
}

// isStockErr reports whether err is a stock shortage of either kind.
func isStockErr(err error) bool {
	return errors.Is(err, ErrInsufficientStock)
}
