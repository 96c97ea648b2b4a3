package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-creamery-pos/internal/costing"
	"go-creamery-pos/internal/events"
	"go-creamery-pos/internal/model"
	"go-creamery-pos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TableService interface {
	AddTable(ctx context.Context, req *TableRequest, userID string) (*model.DiningTable, error)
	ListTables(ctx context.Context) ([]model.DiningTable, error)
	SetTableActive(ctx context.Context, id uuid.UUID, active bool, userID string) error
	VerifyPasscode(ctx context.Context, req *PasscodeRequest) (uuid.UUID, error)
	PlaceOrder(ctx context.Context, req *TableOrderRequest) (*model.TableOrder, error)
	ListLiveOrders(ctx context.Context) ([]model.TableOrder, error)
	GetOrderStatus(ctx context.Context, orderID uuid.UUID) (model.OrderStatus, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, req *OrderStatusRequest, userID string) (*model.TableOrder, error)
}

type TableRequest struct {
	TableNo  int    `json:"table_no" validate:"gt=0"`
	Passcode string `json:"passcode" validate:"required,max=32"`
}

type PasscodeRequest struct {
	TableNo  int    `json:"table_no" validate:"gt=0"`
	Passcode string `json:"passcode" validate:"required"`
}

type TableOrderLine struct {
	ProductID uuid.UUID       `json:"product_id" validate:"uuid_required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"dgt0"`
}

type TableOrderRequest struct {
	TableID      uuid.UUID        `json:"table_id" validate:"uuid_required"`
	TableNo      int              `json:"table_no"`
	Items        []TableOrderLine `json:"items" validate:"required,min=1,dive"`
	CustomerNote string           `json:"customer_note" validate:"max=500"`
}

type OrderStatusRequest struct {
	Status        model.OrderStatus `json:"status" validate:"required"`
	PaymentMethod string            `json:"payment_method" validate:"max=30"`
}

type tableService struct {
	store         repository.Store
	engine        *checkoutEngine
	events        events.Publisher
	menu          MenuCache
	orders        OrderStatusCache
	metrics       Metrics
	publicBaseURL string
}

func NewTableService(store repository.Store, invoices InvoiceGenerator, publisher events.Publisher, menu MenuCache, orders OrderStatusCache, m Metrics, publicBaseURL string) TableService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	if menu == nil {
		menu = nopMenuCache{}
	}
	if orders == nil {
		orders = nopOrderStatusCache{}
	}
	if m == nil {
		m = nopMetrics{}
	}
	return &tableService{
		store:         store,
		engine:        &checkoutEngine{invoices: invoices},
		events:        publisher,
		menu:          menu,
		orders:        orders,
		metrics:       m,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

func (s *tableService) qrURL(tableNo int) string {
	return fmt.Sprintf("%s/menu/table/%d", s.publicBaseURL, tableNo)
}

func (s *tableService) AddTable(ctx context.Context, req *TableRequest, userID string) (*model.DiningTable, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	_, err := s.store.Tables().FindTableByNo(ctx, req.TableNo)
	if err == nil {
		return nil, conflict("Table Number already exists")
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	table := &model.DiningTable{TableNo: req.TableNo, Passcode: req.Passcode, IsActive: true}
	table.Stamp(userID)
	if err := s.store.Tables().CreateTable(ctx, table); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict("Table Number already exists")
		}
		return nil, err
	}
	table.QRCodeURL = s.qrURL(table.TableNo)
	return table, nil
}

func (s *tableService) ListTables(ctx context.Context) ([]model.DiningTable, error) {
	tables, err := s.store.Tables().ListTables(ctx)
	if err != nil {
		return nil, err
	}
	if tables == nil {
		tables = []model.DiningTable{}
	}
	for i := range tables {
		tables[i].QRCodeURL = s.qrURL(tables[i].TableNo)
	}
	return tables, nil
}

func (s *tableService) SetTableActive(ctx context.Context, id uuid.UUID, active bool, userID string) error {
	if err := s.store.Tables().SetTableActive(ctx, id, active, userID); err != nil {
		return lookupErr(err, "Table")
	}
	return nil
}

// VerifyPasscode grants a customer access to a table's menu.
func (s *tableService) VerifyPasscode(ctx context.Context, req *PasscodeRequest) (uuid.UUID, error) {
	if err := validate(req); err != nil {
		return uuid.Nil, err
	}
	table, err := s.store.Tables().FindTableByNo(ctx, req.TableNo)
	if err != nil {
		return uuid.Nil, lookupErr(err, "Table")
	}
	if !table.IsActive {
		return uuid.Nil, notFound("Table")
	}
	if table.Passcode != req.Passcode {
		return uuid.Nil, unauthorized("Invalid Passcode")
	}
	return table.ID, nil
}

// PlaceOrder prices the cart at current selling prices and stages it as Pending.
// Lines for unknown or unpriced products are dropped.
func (s *tableService) PlaceOrder(ctx context.Context, req *TableOrderRequest) (*model.TableOrder, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	table, err := s.store.Tables().FindTableByID(ctx, req.TableID)
	if err != nil {
		return nil, lookupErr(err, "Table")
	}
	if !table.IsActive {
		return nil, notFound("Table")
	}
	if req.TableNo != 0 && req.TableNo != table.TableNo {
		return nil, invalidInput("Table number does not match table")
	}

	order := &model.TableOrder{
		TableID:      table.ID,
		TableNo:      table.TableNo,
		Status:       model.OrderPending,
		CustomerNote: req.CustomerNote,
		TotalAmount:  decimal.Zero,
	}
	for _, line := range req.Items {
		product, err := s.store.Products().FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, err
		}
		if !product.SellingPrice.IsPositive() {
			continue
		}
		quantity := costing.Quantity(line.Quantity)
		if !quantity.IsPositive() {
			return nil, invalidInput("Quantity for '%s' must be greater than zero", product.ProductName)
		}
		lineTotal := costing.Money(product.SellingPrice.Mul(quantity))
		order.Items = append(order.Items, model.TableOrderItem{
			ProductID:   product.ID,
			ProductName: product.ProductName,
			Quantity:    quantity,
			UnitPrice:   product.SellingPrice,
			TotalPrice:  lineTotal,
		})
		order.TotalAmount = order.TotalAmount.Add(lineTotal)
	}
	if len(order.Items) == 0 {
		return nil, invalidInput("None of the ordered items are available")
	}

	order.Stamp(fmt.Sprintf("table:%d", table.TableNo))
	if err := s.store.Tables().CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	s.orders.SetOrderStatus(ctx, order.ID, order.Status)
	s.events.Publish(ctx, events.Event{
		Type:    events.TypeOrder,
		Action:  "order_placed",
		Data:    order,
		Message: fmt.Sprintf("Table %d placed an order", order.TableNo),
	})
	return order, nil
}

func (s *tableService) ListLiveOrders(ctx context.Context) ([]model.TableOrder, error) {
	orders, err := s.store.Tables().ListOrdersByStatus(ctx, model.OrderPending, model.OrderConfirmed)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []model.TableOrder{}
	}
	return orders, nil
}

func (s *tableService) GetOrderStatus(ctx context.Context, orderID uuid.UUID) (model.OrderStatus, error) {
	if status, ok := s.orders.GetOrderStatus(ctx, orderID); ok {
		return status, nil
	}
	order, err := s.store.Tables().FindOrderByID(ctx, orderID)
	if err != nil {
		return "", lookupErr(err, "Order")
	}
	s.orders.SetOrderStatus(ctx, orderID, order.Status)
	return order.Status, nil
}

// UpdateOrderStatus moves an order along its lifecycle. Completing an order
// checks it out at the prices captured when it was placed; if that fails the
// order stays Confirmed.
func (s *tableService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, req *OrderStatusRequest, userID string) (*model.TableOrder, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if !req.Status.Valid() {
		return nil, invalidInput("Unknown order status '%s'", req.Status)
	}

	var (
		order *model.TableOrder
		sale  *model.Sale
	)
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		current, err := tx.Tables().FindOrderByIDForUpdate(ctx, orderID)
		if err != nil {
			return lookupErr(err, "Order")
		}
		if current.Status.IsTerminal() {
			return conflict("Order is already %s", current.Status)
		}
		if !current.Status.CanTransitionTo(req.Status) {
			return conflict("Order cannot move from %s to %s", current.Status, req.Status)
		}

		if req.Status == model.OrderCompleted {
			lines := make([]CartLine, 0, len(current.Items))
			for _, item := range current.Items {
				lines = append(lines, CartLine{ProductID: item.ProductID, Quantity: item.Quantity, UnitPrice: item.UnitPrice})
			}
			sale, err = s.engine.run(ctx, tx, checkoutInput{
				lines:         lines,
				paymentMethod: req.PaymentMethod,
				source:        model.SaleSourceTable,
				tableOrderID:  &current.ID,
				userID:        userID,
			})
			if err != nil {
				return err
			}
			current.InvoiceNo = sale.InvoiceNo
			current.SaleID = &sale.ID
		}

		current.Status = req.Status
		current.UpdatedBy = userID
		if err := tx.Tables().UpdateOrder(ctx, current); err != nil {
			return lookupErr(err, "Order")
		}
		order = current
		return nil
	})
	if err != nil {
		if isStockErr(err) {
			s.metrics.StockRejected("table_order")
		}
		return nil, err
	}

	s.orders.InvalidateOrderStatus(ctx, order.ID)
	if sale != nil {
		announceSale(ctx, s.events, s.menu, s.metrics, sale, userID)
	}
	s.events.Publish(ctx, events.Event{
		Type:    events.TypeOrder,
		Action:  "order_status_changed",
		Data:    map[string]interface{}{"id": order.ID, "table_no": order.TableNo, "status": order.Status, "invoice_no": order.InvoiceNo},
		UserID:  userID,
		Message: fmt.Sprintf("Order for table %d is now %s", order.TableNo, order.Status),
	})
	return order, nil
}
