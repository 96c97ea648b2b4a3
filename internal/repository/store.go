package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicate         = errors.New("duplicate record")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Store groups the repositories that take part in a ledger transaction.
type Store interface {
	Ingredients() IngredientRepository
	Purchases() PurchaseRepository
	Recipes() RecipeRepository
	Products() ProductRepository
	Productions() ProductionRepository
	Sales() SaleRepository
	Tables() TableRepository
	Movements() MovementRepository

	// Transaction runs fn against a Store bound to one database transaction.
	// Any error returned by fn rolls the whole unit back.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Ingredients() IngredientRepository { return NewIngredientRepo(s.db) }
func (s *gormStore) Purchases() PurchaseRepository     { return NewPurchaseRepo(s.db) }
func (s *gormStore) Recipes() RecipeRepository         { return NewRecipeRepo(s.db) }
func (s *gormStore) Products() ProductRepository       { return NewProductRepo(s.db) }
func (s *gormStore) Productions() ProductionRepository { return NewProductionRepo(s.db) }
func (s *gormStore) Sales() SaleRepository             { return NewSaleRepo(s.db) }
func (s *gormStore) Tables() TableRepository           { return NewTableRepo(s.db) }
func (s *gormStore) Movements() MovementRepository     { return NewMovementRepo(s.db) }

func (s *gormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

// translateError maps gorm errors onto the repository sentinels.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}
