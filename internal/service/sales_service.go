package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go-creamery-pos/internal/costing"
	"go-creamery-pos/internal/events"
	"go-creamery-pos/internal/model"
	"go-creamery-pos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SalesService interface {
	Checkout(ctx context.Context, req *CheckoutRequest, userID string) (*model.Sale, error)
	GetSale(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	ListSales(ctx context.Context, q repository.ListQuery) (*repository.Page[model.Sale], error)
}

// CartLine is one POS line. UnitPrice is taken as given so the cashier can override it.
type CartLine struct {
	ProductID uuid.UUID       `json:"product_id" validate:"uuid_required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"dgt0"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"dgte0"`
}

type CheckoutRequest struct {
	Items         []CartLine `json:"items" validate:"required,min=1,dive"`
	PaymentMethod string     `json:"payment_method" validate:"max=30"`
}

type checkoutInput struct {
	lines         []CartLine
	paymentMethod string
	source        string
	tableOrderID  *uuid.UUID
	userID        string
}

// checkoutEngine prices a cart, draws product stock and writes the sale.
// It runs inside a transaction owned by the caller.
type checkoutEngine struct {
	invoices InvoiceGenerator
}

func (e *checkoutEngine) run(ctx context.Context, tx repository.Store, in checkoutInput) (*model.Sale, error) {
	invoiceNo, err := e.nextInvoice(ctx, tx)
	if err != nil {
		return nil, err
	}

	products, err := lockProducts(ctx, tx, in.lines)
	if err != nil {
		return nil, err
	}

	var (
		items       = make([]model.SaleItem, 0, len(in.lines))
		grandTotal  = decimal.Zero
		totalProfit = decimal.Zero
		requested   = map[uuid.UUID]decimal.Decimal{}
	)
	for _, line := range in.lines {
		quantity := costing.Quantity(line.Quantity)
		product := products[line.ProductID]
		if product == nil {
			return nil, &StockError{Product: line.ProductID.String(), Requested: quantity, Available: decimal.Zero}
		}
		if !quantity.IsPositive() {
			return nil, invalidInput("Quantity for '%s' must be greater than zero", product.ProductName)
		}

		cumulative := requested[product.ID].Add(quantity)
		if product.CurrentStock.LessThan(cumulative) {
			return nil, &StockError{Product: product.ProductName, Requested: cumulative, Available: product.CurrentStock}
		}
		requested[product.ID] = cumulative

		unitPrice := costing.Money(line.UnitPrice)
		lineTotal := costing.Money(quantity.Mul(unitPrice))
		productionCost := costing.Money(product.ProductionCostPerUnit.Mul(quantity))
		profit := lineTotal.Sub(productionCost)

		items = append(items, model.SaleItem{
			ProductID:      product.ID,
			ProductName:    product.ProductName,
			Quantity:       quantity,
			UnitPrice:      unitPrice,
			LineTotal:      lineTotal,
			ProductionCost: productionCost,
			Profit:         profit,
		})
		grandTotal = grandTotal.Add(lineTotal)
		totalProfit = totalProfit.Add(profit)
	}

	ledger := productLedger{tx: tx}
	for _, item := range items {
		if err := ledger.adjustStock(ctx, products[item.ProductID], item.Quantity.Neg(), model.MoveSale, invoiceNo, "", in.userID); err != nil {
			return nil, err
		}
	}

	paymentMethod := in.paymentMethod
	if paymentMethod == "" {
		paymentMethod = model.DefaultPaymentMethod
	}
	sale := &model.Sale{
		InvoiceNo:     invoiceNo,
		Items:         items,
		TotalAmount:   grandTotal,
		TotalProfit:   totalProfit,
		PaymentMethod: paymentMethod,
		Source:        in.source,
		TableOrderID:  in.tableOrderID,
	}
	sale.Stamp(in.userID)
	if err := tx.Sales().Create(ctx, sale); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict("Invoice number %s already used, please retry", invoiceNo)
		}
		return nil, err
	}
	return sale, nil
}

// nextInvoice draws numbers until one is unused, giving up after a few collisions.
func (e *checkoutEngine) nextInvoice(ctx context.Context, tx repository.Store) (string, error) {
	for attempt := 0; attempt < maxInvoiceAttempts; attempt++ {
		invoiceNo := e.invoices.Next()
		exists, err := tx.Sales().InvoiceExists(ctx, invoiceNo)
		if err != nil {
			return "", err
		}
		if !exists {
			return invoiceNo, nil
		}
	}
	return "", conflict("Could not allocate a unique invoice number")
}

// lockProducts reads every product in the cart under a row lock, in id order.
// Unknown products map to nil.
func lockProducts(ctx context.Context, tx repository.Store, lines []CartLine) (map[uuid.UUID]*model.Product, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	products := make(map[uuid.UUID]*model.Product, len(lines))
	for _, line := range lines {
		if _, ok := products[line.ProductID]; !ok {
			products[line.ProductID] = nil
			ids = append(ids, line.ProductID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	for _, id := range ids {
		p, err := tx.Products().FindByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, err
		}
		products[id] = p
	}
	return products, nil
}

type salesService struct {
	store   repository.Store
	engine  *checkoutEngine
	events  events.Publisher
	menu    MenuCache
	metrics Metrics
}

func NewSalesService(store repository.Store, invoices InvoiceGenerator, publisher events.Publisher, menu MenuCache, m Metrics) SalesService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	if menu == nil {
		menu = nopMenuCache{}
	}
	if m == nil {
		m = nopMetrics{}
	}
	return &salesService{
		store:   store,
		engine:  &checkoutEngine{invoices: invoices},
		events:  publisher,
		menu:    menu,
		metrics: m,
	}
}

func (s *salesService) Checkout(ctx context.Context, req *CheckoutRequest, userID string) (*model.Sale, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	var sale *model.Sale
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		sale, err = s.engine.run(ctx, tx, checkoutInput{
			lines:         req.Items,
			paymentMethod: req.PaymentMethod,
			source:        model.SaleSourcePOS,
			userID:        userID,
		})
		return err
	})
	if err != nil {
		if isStockErr(err) {
			s.metrics.StockRejected("checkout")
		}
		return nil, err
	}

	announceSale(ctx, s.events, s.menu, s.metrics, sale, userID)
	return sale, nil
}

func (s *salesService) GetSale(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	sale, err := s.store.Sales().FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "Sale")
	}
	return sale, nil
}

func (s *salesService) ListSales(ctx context.Context, q repository.ListQuery) (*repository.Page[model.Sale], error) {
	q = q.Normalize()
	items, total, err := s.store.Sales().List(ctx, q)
	if err != nil {
		return nil, err
	}
	return repository.NewPage(items, total, q), nil
}

// announceSale runs the after-commit side effects shared by POS and table checkouts.
func announceSale(ctx context.Context, publisher events.Publisher, menu MenuCache, m Metrics, sale *model.Sale, userID string) {
	m.SaleCompleted(sale.Source, sale.TotalAmount, sale.TotalProfit)
	menu.InvalidateMenu(ctx)
	publisher.Publish(ctx, events.Event{
		Type:   events.TypeSale,
		Action: "sale_completed",
		Data: map[string]interface{}{
			"id":           sale.ID,
			"invoice_no":   sale.InvoiceNo,
			"total_amount": sale.TotalAmount,
			"source":       sale.Source,
		},
		UserID:  userID,
		Message: fmt.Sprintf("Invoice #%s completed", sale.InvoiceNo),
	})
}
