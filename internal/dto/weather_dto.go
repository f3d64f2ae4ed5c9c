package dto

// CurrentConditions is the normalized current-weather reading returned by the
// weather collaborator.
type CurrentConditions struct {
	Condition   string   `json:"condition"`
	Temperature float64  `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
}

// DailyConditions is one past-day reading from the weather history lookup.
type DailyConditions struct {
	Date        string   `json:"date"` // YYYY-MM-DD
	Temperature *float64 `json:"temperature"`
	Condition   string   `json:"condition"`
	Humidity    *float64 `json:"humidity"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type TodayWeatherResponse struct {
	Supplier    string   `json:"supplier"`
	Location    string   `json:"location"`
	Lat         float64  `json:"lat"`
	Lon         float64  `json:"lon"`
	Condition   string   `json:"condition"`
	Temperature float64  `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
}

type WeatherHistoryResponse struct {
	Supplier string            `json:"supplier"`
	Location string            `json:"location"`
	History  []DailyConditions `json:"history"`
}

// ─── Weather impact check ────────────────────────────────────────────────────

type CheckImpactRequest struct {
	SupplierID   string  `json:"supplier_id"   validate:"required,uuid"`
	Latitude     float64 `json:"latitude"      validate:"min=-90,max=90"`
	Longitude    float64 `json:"longitude"     validate:"min=-180,max=180"`
	DeliveryDate string  `json:"delivery_date" validate:"required"` // YYYY-MM-DD
}

type CheckImpactResponse struct {
	AdverseWeather    bool   `json:"adverse_weather"`
	Weather           string `json:"weather"`
	Recommendation    string `json:"recommendation"`
	ComplianceUpdated bool   `json:"compliance_updated"`
	Supplier          string `json:"supplier"`
	Date              string `json:"date"`
}
