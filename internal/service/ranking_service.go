package service

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/sankalp-nadiger/Auditryx/internal/dto"
	"github.com/sankalp-nadiger/Auditryx/internal/model"
	"github.com/sankalp-nadiger/Auditryx/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	earthRadiusKm     = 6371
	historyPromptSize = 5 // recent records quoted in the prompt
)

// feasibility scores appear in advisory text as "<number>/10"; first match wins
var scorePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*/\s*10`)

type RankingService interface {
	// RankSuppliers evaluates every supplier against the user's location:
	// geocode → distance → live weather → advisory assessment. Per-supplier
	// failures become error entries; the batch itself never fails for one
	// supplier.
	RankSuppliers(ctx context.Context, userLat, userLon float64) (*dto.RankingResponse, error)
}

type rankingService struct {
	suppliers repository.SupplierRepository
	records   repository.ComplianceRepository
	geocoder  Geocoder
	weather   WeatherProvider
	advisor   Advisor
	reference ReferenceSource
}

func NewRankingService(
	suppliers repository.SupplierRepository,
	records repository.ComplianceRepository,
	geocoder Geocoder,
	weather WeatherProvider,
	advisor Advisor,
	reference ReferenceSource,
) RankingService {
	return &rankingService{
		suppliers: suppliers,
		records:   records,
		geocoder:  geocoder,
		weather:   weather,
		advisor:   advisor,
		reference: reference,
	}
}

func (s *rankingService) RankSuppliers(ctx context.Context, userLat, userLon float64) (*dto.RankingResponse, error) {
	snapshot, err := s.reference.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("static compliance dataset not available: %w", err)
	}

	suppliers, err := s.suppliers.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]dto.RankingEntry, 0, len(suppliers))
	var best *dto.RankedSupplier
	bestScore := -1.0

	for i := range suppliers {
		sup := &suppliers[i]
		ranked, err := s.evaluate(ctx, sup, userLat, userLon, snapshot)
		if err != nil {
			results = append(results, dto.RankingEntry{
				Supplier: sup.Name,
				Error:    "Failed to evaluate: " + err.Error(),
			})
			continue
		}

		// Strict greater-than: the first supplier to reach the maximum
		// score stays best; later equal scores never replace it.
		if ranked.FeasibilityScore > bestScore {
			bestScore = ranked.FeasibilityScore
			best = ranked
		}
		results = append(results, dto.RankingEntry{Evaluated: ranked, Supplier: sup.Name})
	}

	return &dto.RankingResponse{Results: results, BestSupplier: best}, nil
}

func (s *rankingService) evaluate(ctx context.Context, sup *model.Supplier, userLat, userLon float64, snapshot string) (*dto.RankedSupplier, error) {
	lat, lon, err := s.geocoder.Resolve(ctx, sup.Location())
	if err != nil {
		return nil, err
	}

	distance := roundTo(haversineKm(userLat, userLon, lat, lon), 2)

	conditions, err := s.weather.Current(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	records, err := s.records.ListBySupplier(ctx, sup.ID)
	if err != nil {
		return nil, err
	}

	prompt := buildRankingPrompt(sup, conditions, distance, formatComplianceHistory(records), snapshot)
	recommendation, err := s.advisor.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return &dto.RankedSupplier{
		Supplier:         sup.Name,
		Weather:          conditions.Condition,
		Temperature:      conditions.Temperature,
		DistanceKm:       distance,
		RiskLevel:        sup.RiskLevel,
		Status:           sup.Status,
		FeasibilityScore: extractFeasibilityScore(recommendation),
		Recommendation:   recommendation,
	}, nil
}

// haversineKm computes the great-circle distance between two coordinates.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	deltaPhi := (lat2 - lat1) * math.Pi / 180
	deltaLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Pow(math.Sin(deltaPhi/2), 2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Pow(math.Sin(deltaLambda/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// extractFeasibilityScore pulls the "<n>/10" rating out of free advisory
// text. Missing or malformed patterns default to 0 — parse failures are
// recovered locally, never surfaced.
func extractFeasibilityScore(text string) float64 {
	m := scorePattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	score, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return score
}

// formatComplianceHistory renders the last records (as stored) as prompt
// bullet lines.
func formatComplianceHistory(records []model.ComplianceRecord) string {
	if len(records) == 0 {
		return "No compliance records found."
	}
	start := 0
	if len(records) > historyPromptSize {
		start = len(records) - historyPromptSize
	}

	lines := make([]string, 0, historyPromptSize)
	for _, r := range records[start:] {
		result := "N/A"
		if r.Result != nil {
			result = strconv.FormatFloat(*r.Result, 'g', -1, 64)
		}
		lines = append(lines, fmt.Sprintf("- %s on %s: %s (%s)",
			r.Metric, r.DateRecorded.Format("2006-01-02"), result, r.Status))
	}
	return strings.Join(lines, "\n")
}

func buildRankingPrompt(sup *model.Supplier, conditions *dto.CurrentConditions, distanceKm float64, history, snapshot string) string {
	riskLevel := "unknown"
	if sup.RiskLevel != nil {
		riskLevel = *sup.RiskLevel
	}
	status := "unknown"
	if sup.Status != nil {
		status = *sup.Status
	}

	return fmt.Sprintf(`You are evaluating suppliers for a procurement system.

Below is a REFERENCE dataset of past supplier compliance examples:
%s
Please do not mention any limitations about the dataset size or content. Limit your response to a maximum of 4000 characters, and focus on actionable insights only.

Now evaluate this LIVE supplier:
- Name: %s
- Country: %s
- Risk Level: %s
- Status: %s
- Current Weather: %s, %.1f°C
- Distance from user: %.2f km

RECENT COMPLIANCE HISTORY:
%s

Return:
1. Feasibility score (out of 10)
2. Strengths & risks
3. Should the user select them today?
4. Recommended action (approve, monitor, avoid)
`, snapshot, sup.Name, sup.Country, riskLevel, status, conditions.Condition, conditions.Temperature, distanceKm, history)
}

func roundTo(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
