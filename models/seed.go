package models

import (
	"context"
	"errors"
	"fmt"
)

// SampleProduct is a catalog entry loaded into an empty store.
type SampleProduct struct {
	Record    NutritionRecord
	Additives string
}

// SampleCatalog is the bootstrap data set.
var SampleCatalog = []SampleProduct{
	{
		Record: NutritionRecord{
			Barcode: "6009900000003", Name: "Coca-Cola Original", Brand: "Coca-Cola", Category: "Beverages",
			Nutrition: Nutrition{Sugar: 10.6, Calories: 42},
		},
		Additives: "E150d, E338",
	},
	{
		Record: NutritionRecord{
			Barcode: "6001087340014", Name: "Full Cream Milk", Brand: "Clover", Category: "Dairy",
			Nutrition: Nutrition{Sugar: 4.7, Salt: 0.1, Fat: 3.3, SaturatedFat: 2.1, Protein: 3.4, Calories: 64},
		},
	},
	{
		Record: NutritionRecord{
			Barcode: "6001240100035", Name: "Jungle Oats", Brand: "Tiger Brands", Category: "Breakfast Cereals",
			Nutrition: Nutrition{Sugar: 1.1, Fat: 7.2, SaturatedFat: 1.3, Protein: 11.8, Fiber: 10.1, Calories: 374},
		},
	},
	{
		Record: NutritionRecord{
			Barcode: "6009510800418", Name: "Salt & Vinegar Chips", Brand: "Simba", Category: "Snacks",
			Nutrition: Nutrition{Sugar: 2.4, Salt: 2.1, Fat: 33.0, SaturatedFat: 15.2, Protein: 6.1, Fiber: 3.9, Calories: 536},
		},
		Additives: "E330, E262, E621, E635",
	},
	{
		Record: NutritionRecord{
			Barcode: "6001068331208", Name: "Strawberry Yoghurt", Brand: "Danone", Category: "Dairy",
			Nutrition: Nutrition{Sugar: 12.9, Salt: 0.1, Fat: 2.5, SaturatedFat: 1.6, Protein: 3.1, Calories: 95},
		},
		Additives: "E1442, E120, E202",
	},
	{
		Record: NutritionRecord{
			Barcode: "6001253010123", Name: "Brown Bread", Brand: "Albany", Category: "Bakery",
			Nutrition: Nutrition{Sugar: 3.2, Salt: 1.0, Fat: 2.9, SaturatedFat: 0.6, Protein: 8.9, Fiber: 6.4, Calories: 236},
		},
		Additives: "E282, E471",
	},
}

// Seed inserts catalog into the store when it holds no products and returns
// the number of products added. Barcodes that already exist are skipped.
func (r *ProductsRepository) Seed(ctx context.Context, catalog []SampleProduct) (int, error) {
	n, err := r.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	inserted := 0
	for _, p := range catalog {
		if _, err := r.Insert(ctx, p.Record, ParseAdditives(p.Additives)); err != nil {
			if errors.Is(err, ErrDuplicateKey) {
				continue
			}
			return inserted, fmt.Errorf("seed %s: %w", p.Record.Barcode, err)
		}
		inserted++
	}
	return inserted, nil
}
