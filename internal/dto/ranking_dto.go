package dto

import "encoding/json"

// RankedSupplier is a fully evaluated candidate in the ranking response.
type RankedSupplier struct {
	Supplier         string  `json:"supplier"`
	Weather          string  `json:"weather"`
	Temperature      float64 `json:"temperature"`
	DistanceKm       float64 `json:"distance_km"`
	RiskLevel        *string `json:"risk_level"`
	Status           *string `json:"status"`
	FeasibilityScore float64 `json:"feasibility_score"`
	Recommendation   string  `json:"recommendation"`
}

// RankingEntry is the per-supplier result of the ranking batch: either a full
// evaluation or an error record. A failed supplier never aborts the batch.
type RankingEntry struct {
	Evaluated *RankedSupplier `json:"-"`
	Supplier  string          `json:"-"`
	Error     string          `json:"-"`
}

// MarshalJSON renders a success entry as the full evaluation object and a
// failure entry as {supplier, error}.
func (e RankingEntry) MarshalJSON() ([]byte, error) {
	if e.Evaluated != nil {
		return json.Marshal(e.Evaluated)
	}
	return json.Marshal(struct {
		Supplier string `json:"supplier"`
		Error    string `json:"error"`
	}{Supplier: e.Supplier, Error: e.Error})
}

type RankingResponse struct {
	Results      []RankingEntry  `json:"results"`
	BestSupplier *RankedSupplier `json:"best_supplier"`
}
