package repository

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// applyStockDelta adds delta to current_stock in a single conditional write.
// The row is only touched when the result stays non-negative.
func applyStockDelta(db *gorm.DB, table interface{}, id uuid.UUID, delta decimal.Decimal, updatedBy string) error {
	res := stockDeltaUpdate(db, table, id, delta, updatedBy)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := db.Model(table).Where("id = ?", id).Count(&count).Error; err != nil {
		return translateError(err)
	}
	if count == 0 {
		return ErrNotFound
	}
	return ErrInsufficientStock
}

func stockDeltaUpdate(db *gorm.DB, table interface{}, id uuid.UUID, delta decimal.Decimal, updatedBy string) *gorm.DB {
	return db.Model(table).
		Where("id = ? AND current_stock + ? >= 0", id, delta).
		Updates(map[string]interface{}{
			"current_stock": gorm.Expr("current_stock + ?", delta),
			"updated_by":    updatedBy,
		})
}
