package models

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductsRepository stores products and their additive lists.
type ProductsRepository struct {
	db *gorm.DB
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

// Migrate creates the products and product_additives tables.
func (r *ProductsRepository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&Product{}, &Additive{}); err != nil {
		return &StorageError{Op: "migrate", Err: err}
	}
	return nil
}

// FindByBarcode returns the product and its additives in insertion order.
func (r *ProductsRepository) FindByBarcode(ctx context.Context, barcode string) (NutritionRecord, []string, error) {
	var product Product
	if err := r.db.WithContext(ctx).
		Preload("Additives", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("barcode = ?", barcode).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NutritionRecord{}, nil, fmt.Errorf("barcode %s: %w", barcode, ErrProductNotFound)
		}
		return NutritionRecord{}, nil, &StorageError{Op: "find product", Err: err}
	}
	return product.Record(), product.AdditiveCodes(), nil
}

func (r *ProductsRepository) Exists(ctx context.Context, barcode string) (bool, error) {
	n, err := countBarcode(r.db.WithContext(ctx), barcode)
	if err != nil {
		return false, &StorageError{Op: "check product", Err: err}
	}
	return n > 0, nil
}

// Count returns the number of stored products.
func (r *ProductsRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&Product{}).Count(&n).Error; err != nil {
		return 0, &StorageError{Op: "count products", Err: err}
	}
	return n, nil
}

// Insert validates the record, fills defaults and persists it together with
// its additives in a single transaction. It never overwrites an existing
// product: a taken barcode yields ErrDuplicateKey.
func (r *ProductsRepository) Insert(ctx context.Context, rec NutritionRecord, additives []string) (string, error) {
	rec = rec.withDefaults()
	if err := ValidateProduct(rec, additives); err != nil {
		return "", err
	}

	product := newProduct(rec, additives)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := countBarcode(tx, rec.Barcode)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrDuplicateKey
		}
		if err := tx.Omit(clause.Associations).Create(product).Error; err != nil {
			return err
		}
		if len(product.Additives) > 0 {
			if err := tx.Create(&product.Additives).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", mapWriteError("insert product", rec.Barcode, err)
	}
	return rec.Barcode, nil
}

func countBarcode(db *gorm.DB, barcode string) (int64, error) {
	var n int64
	err := db.Model(&Product{}).Where("barcode = ?", barcode).Count(&n).Error
	return n, err
}

// mapWriteError converts unique violations into ErrDuplicateKey and wraps
// everything else as a StorageError. SQLite and pgx violations arrive as
// gorm.ErrDuplicatedKey through TranslateError; lib/pq ones do not.
func mapWriteError(op, barcode string, err error) error {
	if errors.Is(err, ErrDuplicateKey) || errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
		return fmt.Errorf("barcode %s: %w", barcode, ErrDuplicateKey)
	}
	return &StorageError{Op: op, Err: err}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
