package models

import (
	"github.com/shopspring/decimal"
)

// DefaultCategory is assigned to products inserted without a category.
const DefaultCategory = "General"

// Nutrition holds nutrient amounts per 100g/100ml.
type Nutrition struct {
	Sugar        float64 `json:"sugar"`
	Salt         float64 `json:"salt"`
	Fat          float64 `json:"fat"`
	SaturatedFat float64 `json:"saturated_fat"`
	Protein      float64 `json:"protein"`
	Fiber        float64 `json:"fiber"`
	Calories     float64 `json:"calories"`
}

// NutritionRecord is the identity and nutrient profile of a product.
type NutritionRecord struct {
	Barcode   string
	Name      string
	Brand     string
	Category  string
	Nutrition Nutrition
}

// Product is the persisted form of a NutritionRecord.
// The barcode is the primary key; additives are owned rows removed with it.
// Nutrient columns carry no precision or scale so every float64 reads back
// unchanged on PostgreSQL as well as SQLite.
type Product struct {
	Barcode      string          `gorm:"primaryKey;size:64"`
	Name         string          `gorm:"not null"`
	Brand        string          `gorm:"not null"`
	Category     string          `gorm:"not null;default:'General'"`
	Sugar        decimal.Decimal `gorm:"type:numeric;not null"`
	Salt         decimal.Decimal `gorm:"type:numeric;not null"`
	Fat          decimal.Decimal `gorm:"type:numeric;not null"`
	SaturatedFat decimal.Decimal `gorm:"type:numeric;not null"`
	Protein      decimal.Decimal `gorm:"type:numeric;not null"`
	Fiber        decimal.Decimal `gorm:"type:numeric;not null"`
	Calories     decimal.Decimal `gorm:"type:numeric;not null"`
	Additives    []Additive      `gorm:"foreignKey:ProductBarcode;references:Barcode;constraint:OnDelete:CASCADE"`
}

func (p *Product) TableName() string {
	return "products"
}

// Additive is one entry of a product's additive list. Position keeps the
// order in which the codes were supplied.
type Additive struct {
	ID             uint   `gorm:"primaryKey"`
	ProductBarcode string `gorm:"size:64;not null;index:idx_additive_product_position,priority:1"`
	Position       int    `gorm:"not null;index:idx_additive_product_position,priority:2"`
	Code           string `gorm:"size:32;not null"`
}

func (a *Additive) TableName() string {
	return "product_additives"
}

func newProduct(rec NutritionRecord, additives []string) *Product {
	p := &Product{
		Barcode:      rec.Barcode,
		Name:         rec.Name,
		Brand:        rec.Brand,
		Category:     rec.Category,
		Sugar:        decimal.NewFromFloat(rec.Nutrition.Sugar),
		Salt:         decimal.NewFromFloat(rec.Nutrition.Salt),
		Fat:          decimal.NewFromFloat(rec.Nutrition.Fat),
		SaturatedFat: decimal.NewFromFloat(rec.Nutrition.SaturatedFat),
		Protein:      decimal.NewFromFloat(rec.Nutrition.Protein),
		Fiber:        decimal.NewFromFloat(rec.Nutrition.Fiber),
		Calories:     decimal.NewFromFloat(rec.Nutrition.Calories),
		Additives:    make([]Additive, len(additives)),
	}
	for i, code := range additives {
		p.Additives[i] = Additive{ProductBarcode: rec.Barcode, Position: i, Code: code}
	}
	return p
}

// Record converts the persisted row back to its domain form.
func (p *Product) Record() NutritionRecord {
	return NutritionRecord{
		Barcode:  p.Barcode,
		Name:     p.Name,
		Brand:    p.Brand,
		Category: p.Category,
		Nutrition: Nutrition{
			Sugar:        p.Sugar.InexactFloat64(),
			Salt:         p.Salt.InexactFloat64(),
			Fat:          p.Fat.InexactFloat64(),
			SaturatedFat: p.SaturatedFat.InexactFloat64(),
			Protein:      p.Protein.InexactFloat64(),
			Fiber:        p.Fiber.InexactFloat64(),
			Calories:     p.Calories.InexactFloat64(),
		},
	}
}

// AdditiveCodes returns the additive codes in insertion order. Additives must
// already be sorted by Position.
func (p *Product) AdditiveCodes() []string {
	codes := make([]string, len(p.Additives))
	for i, a := range p.Additives {
		codes[i] = a.Code
	}
	return codes
}
