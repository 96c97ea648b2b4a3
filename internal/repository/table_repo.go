package repository

import (
	"context"

	"go-creamery-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TableRepository interface {
	CreateTable(ctx context.Context, table *model.DiningTable) error
	ListTables(ctx context.Context) ([]model.DiningTable, error)
	FindTableByID(ctx context.Context, id uuid.UUID) (*model.DiningTable, error)
	FindTableByNo(ctx context.Context, tableNo int) (*model.DiningTable, error)
	SetTableActive(ctx context.Context, id uuid.UUID, active bool, updatedBy string) error

	CreateOrder(ctx context.Context, order *model.TableOrder) error
	FindOrderByID(ctx context.Context, id uuid.UUID) (*model.TableOrder, error)
	FindOrderByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.TableOrder, error)
	ListOrdersByStatus(ctx context.Context, statuses ...model.OrderStatus) ([]model.TableOrder, error)
	UpdateOrder(ctx context.Context, order *model.TableOrder) error
}

type tableRepo struct {
	db *gorm.DB
}

func NewTableRepo(db *gorm.DB) TableRepository {
	return &tableRepo{db}
}

func (r *tableRepo) CreateTable(ctx context.Context, table *model.DiningTable) error {
	return translateError(r.db.WithContext(ctx).Create(table).Error)
}

func (r *tableRepo) ListTables(ctx context.Context) ([]model.DiningTable, error) {
	var tables []model.DiningTable
	err := r.db.WithContext(ctx).Order("table_no ASC").Find(&tables).Error
	return tables, err
}

func (r *tableRepo) FindTableByID(ctx context.Context, id uuid.UUID) (*model.DiningTable, error) {
	var table model.DiningTable
	if err := r.db.WithContext(ctx).First(&table, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &table, nil
}

func (r *tableRepo) FindTableByNo(ctx context.Context, tableNo int) (*model.DiningTable, error) {
	var table model.DiningTable
	if err := r.db.WithContext(ctx).Where("table_no = ?", tableNo).First(&table).Error; err != nil {
		return nil, translateError(err)
	}
	return &table, nil
}

func (r *tableRepo) SetTableActive(ctx context.Context, id uuid.UUID, active bool, updatedBy string) error {
	res := r.db.WithContext(ctx).Model(&model.DiningTable{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_active": active, "updated_by": updatedBy})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *tableRepo) CreateOrder(ctx context.Context, order *model.TableOrder) error {
	return translateError(r.db.WithContext(ctx).Create(order).Error)
}

func (r *tableRepo) FindOrderByID(ctx context.Context, id uuid.UUID) (*model.TableOrder, error) {
	var order model.TableOrder
	if err := r.db.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &order, nil
}

func (r *tableRepo) FindOrderByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.TableOrder, error) {
	var order model.TableOrder
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Items").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &order, nil
}

func (r *tableRepo) ListOrdersByStatus(ctx context.Context, statuses ...model.OrderStatus) ([]model.TableOrder, error) {
	var orders []model.TableOrder
	err := r.db.WithContext(ctx).Preload("Items").
		Where("status IN ?", statuses).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// UpdateOrder writes the order's status and checkout link.
func (r *tableRepo) UpdateOrder(ctx context.Context, order *model.TableOrder) error {
	res := r.db.WithContext(ctx).Model(order).
		Select("status", "invoice_no", "sale_id", "updated_by", "updated_at").
		Updates(order)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
