package repository

import (
	"context"
	"time"

	"go-creamery-pos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleRepository interface {
	Create(ctx context.Context, sale *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	InvoiceExists(ctx context.Context, invoiceNo string) (bool, error)
	List(ctx context.Context, q ListQuery) ([]model.Sale, int64, error)
	Summary(ctx context.Context) (*SalesSummary, error)
	DailyRevenue(ctx context.Context, since time.Time) ([]DailyRevenue, error)
	TopProducts(ctx context.Context, limit int) ([]TopProduct, error)
	Recent(ctx context.Context, limit int) ([]model.Sale, error)
}

// SalesSummary holds lifetime totals across all sales.
type SalesSummary struct {
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalProfit  decimal.Decimal `json:"total_profit"`
	OrderCount   int64           `json:"order_count"`
}

// DailyRevenue is one bar of the revenue chart.
type DailyRevenue struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
	Profit  decimal.Decimal `json:"profit"`
}

type TopProduct struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Revenue     decimal.Decimal `json:"revenue"`
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) Create(ctx context.Context, sale *model.Sale) error {
	return translateError(r.db.WithContext(ctx).Create(sale).Error)
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	if err := r.db.WithContext(ctx).Preload("Items").First(&sale, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &sale, nil
}

func (r *saleRepo) InvoiceExists(ctx context.Context, invoiceNo string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Sale{}).Where("invoice_no = ?", invoiceNo).Count(&count).Error
	return count > 0, err
}

func (r *saleRepo) List(ctx context.Context, q ListQuery) ([]model.Sale, int64, error) {
	var (
		sales []model.Sale
		total int64
	)
	query := r.db.WithContext(ctx).Model(&model.Sale{})
	if q.Search != "" {
		query = query.Where("invoice_no ILIKE ?", q.Pattern())
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload("Items").
		Order("created_at DESC").Offset(q.Offset()).Limit(q.Limit).
		Find(&sales).Error
	return sales, total, err
}

func (r *saleRepo) Summary(ctx context.Context) (*SalesSummary, error) {
	var summary SalesSummary
	row := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select("COALESCE(SUM(total_amount), 0), COALESCE(SUM(total_profit), 0), COUNT(*)").
		Row()
	if err := row.Scan(&summary.TotalRevenue, &summary.TotalProfit, &summary.OrderCount); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *saleRepo) DailyRevenue(ctx context.Context, since time.Time) ([]DailyRevenue, error) {
	var results []DailyRevenue

	rows, err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select(`
			TO_CHAR(DATE(created_at), 'YYYY-MM-DD') as date,
			COALESCE(SUM(total_amount), 0) as revenue,
			COALESCE(SUM(total_profit), 0) as profit
		`).
		Where("created_at >= ?", since).
		Group("DATE(created_at)").
		Order("DATE(created_at) ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data DailyRevenue
		if err := rows.Scan(&data.Date, &data.Revenue, &data.Profit); err != nil {
			return nil, err
		}
		results = append(results, data)
	}
	return results, rows.Err()
}

func (r *saleRepo) TopProducts(ctx context.Context, limit int) ([]TopProduct, error) {
	var results []TopProduct

	rows, err := r.db.WithContext(ctx).Model(&model.SaleItem{}).
		Select(`
			product_id,
			MAX(product_name) as product_name,
			COALESCE(SUM(quantity), 0) as quantity,
			COALESCE(SUM(line_total), 0) as revenue
		`).
		Group("product_id").
		Order("quantity DESC").
		Limit(limit).
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data TopProduct
		if err := rows.Scan(&data.ProductID, &data.ProductName, &data.Quantity, &data.Revenue); err != nil {
			return nil, err
		}
		results = append(results, data)
	}
	return results, rows.Err()
}

func (r *saleRepo) Recent(ctx context.Context, limit int) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).Preload("Items").Order("created_at DESC").Limit(limit).Find(&sales).Error
	return sales, err
}
