package catalog

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/veo1/health-scanner/models"
)

// createProductRequest uses pointers so an absent field can be told apart
// from an explicit zero.
type createProductRequest struct {
	Barcode      *string      `json:"barcode"`
	Name         *string      `json:"name"`
	Brand        *string      `json:"brand"`
	Category     string       `json:"category"`
	Sugar        *float64     `json:"sugar"`
	Salt         *float64     `json:"salt"`
	Fat          *float64     `json:"fat"`
	SaturatedFat *float64     `json:"saturated_fat"`
	Protein      *float64     `json:"protein"`
	Fiber        *float64     `json:"fiber"`
	Calories     *float64     `json:"calories"`
	Additives    additiveList `json:"additives"`
}

// missingFields reports absent required fields in models.RequiredFields order.
func (req createProductRequest) missingFields() []string {
	present := map[string]bool{
		"barcode":       req.Barcode != nil,
		"name":          req.Name != nil,
		"brand":         req.Brand != nil,
		"sugar":         req.Sugar != nil,
		"salt":          req.Salt != nil,
		"fat":           req.Fat != nil,
		"saturated_fat": req.SaturatedFat != nil,
		"protein":       req.Protein != nil,
		"fiber":         req.Fiber != nil,
		"calories":      req.Calories != nil,
	}

	var missing []string
	for _, f := range models.RequiredFields {
		if !present[f] {
			missing = append(missing, f)
		}
	}
	return missing
}

// record assumes missingFields returned nothing.
func (req createProductRequest) record() models.NutritionRecord {
	return models.NutritionRecord{
		Barcode:  *req.Barcode,
		Name:     *req.Name,
		Brand:    *req.Brand,
		Category: req.Category,
		Nutrition: models.Nutrition{
			Sugar:        *req.Sugar,
			Salt:         *req.Salt,
			Fat:          *req.Fat,
			SaturatedFat: *req.SaturatedFat,
			Protein:      *req.Protein,
			Fiber:        *req.Fiber,
			Calories:     *req.Calories,
		},
	}
}

var errAdditivesType = errors.New("additives must be a comma-separated string or an array of strings")

// additiveList accepts either "E330, E471" or ["E330", "E471"].
type additiveList []string

func (a *additiveList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = nil
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*a = models.ParseAdditives(raw)
		return nil
	}

	var codes []string
	if err := json.Unmarshal(data, &codes); err != nil {
		return errAdditivesType
	}
	*a = codes
	return nil
}
