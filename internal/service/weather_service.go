package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sankalp-nadiger/Auditryx/internal/dto"
	"github.com/sankalp-nadiger/Auditryx/internal/model"
	"github.com/sankalp-nadiger/Auditryx/internal/repository"
	"github.com/sankalp-nadiger/Auditryx/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const historyDays = 7

// weatherDelayMetric is the compliance metric upserted when adverse weather
// threatens a scheduled delivery.
const weatherDelayMetric = "weather_delay"

// adverseWords flag a weather description as delivery-threatening.
var adverseWords = []string{"rain", "snow", "storm", "thunder", "hail", "extreme"}

// ErrWeatherUnavailable wraps upstream weather failures for handler mapping.
var ErrWeatherUnavailable = errors.New("weather data not available")

type WeatherService interface {
	Today(ctx context.Context, supplierID uuid.UUID) (*dto.TodayWeatherResponse, error)
	History(ctx context.Context, supplierID uuid.UUID) (*dto.WeatherHistoryResponse, error)
	// CheckImpact flags adverse conditions for a scheduled delivery, asks the
	// advisory service for guidance, and upserts a weather-delay compliance
	// record when the forecast is adverse.
	CheckImpact(ctx context.Context, req dto.CheckImpactRequest) (*dto.CheckImpactResponse, error)
}

type weatherService struct {
	suppliers  repository.SupplierRepository
	records    repository.ComplianceRepository
	users      repository.UserRepository
	geocoder   Geocoder
	weather    WeatherProvider
	advisor    Advisor
	dispatcher *worker.Dispatcher
}

func NewWeatherService(
	suppliers repository.SupplierRepository,
	records repository.ComplianceRepository,
	users repository.UserRepository,
	geocoder Geocoder,
	weather WeatherProvider,
	advisor Advisor,
	dispatcher *worker.Dispatcher,
) WeatherService {
	return &weatherService{
		suppliers:  suppliers,
		records:    records,
		users:      users,
		geocoder:   geocoder,
		weather:    weather,
		advisor:    advisor,
		dispatcher: dispatcher,
	}
}

func (s *weatherService) Today(ctx context.Context, supplierID uuid.UUID) (*dto.TodayWeatherResponse, error) {
	sup, err := s.suppliers.FindByID(ctx, supplierID)
	if err != nil {
		return nil, ErrSupplierNotFound
	}

	place := sup.Location()
	lat, lon, err := s.geocoder.Resolve(ctx, place)
	if err != nil {
		return nil, err
	}

	conditions, err := s.weather.Current(ctx, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWeatherUnavailable, err)
	}

	return &dto.TodayWeatherResponse{
		Supplier:    sup.Name,
		Location:    place,
		Lat:         lat,
		Lon:         lon,
		Condition:   conditions.Condition,
		Temperature: conditions.Temperature,
		Humidity:    conditions.Humidity,
	}, nil
}

func (s *weatherService) History(ctx context.Context, supplierID uuid.UUID) (*dto.WeatherHistoryResponse, error) {
	sup, err := s.suppliers.FindByID(ctx, supplierID)
	if err != nil {
		return nil, ErrSupplierNotFound
	}

	place := sup.Location()
	lat, lon, err := s.geocoder.Resolve(ctx, place)
	if err != nil {
		return nil, err
	}

	history, err := s.weather.History(ctx, lat, lon, historyDays)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWeatherUnavailable, err)
	}

	return &dto.WeatherHistoryResponse{
		Supplier: sup.Name,
		Location: place,
		History:  history,
	}, nil
}

func (s *weatherService) CheckImpact(ctx context.Context, req dto.CheckImpactRequest) (*dto.CheckImpactResponse, error) {
	deliveryDate, err := time.Parse("2006-01-02", req.DeliveryDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		return nil, ErrSupplierNotFound
	}
	sup, err := s.suppliers.FindByID(ctx, supplierID)
	if err != nil {
		return nil, ErrSupplierNotFound
	}

	conditions, err := s.weather.Current(ctx, req.Latitude, req.Longitude)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWeatherUnavailable, err)
	}
	description := strings.ToLower(conditions.Condition)
	adverse := isAdverse(description)

	// Advisory guidance degrades to an inline error string — a downed
	// advisory service must not block the impact check itself.
	recommendation, err := s.advisor.Generate(ctx, buildImpactPrompt(sup.Name, req, description))
	if err != nil {
		recommendation = "advisory error: " + err.Error()
	}

	updated := false
	if adverse {
		if err := s.upsertWeatherDelay(ctx, sup, deliveryDate, description); err != nil {
			log.Error().Err(err).Str("supplier", sup.Name).Msg("weather impact: failed to record delay")
		} else {
			updated = true
		}
		s.notifyOwner(ctx, sup, req.DeliveryDate, description)
	}

	return &dto.CheckImpactResponse{
		AdverseWeather:    adverse,
		Weather:           description,
		Recommendation:    recommendation,
		ComplianceUpdated: updated,
		Supplier:          sup.Name,
		Date:              req.DeliveryDate,
	}, nil
}

func isAdverse(description string) bool {
	for _, w := range adverseWords {
		if strings.Contains(description, w) {
			return true
		}
	}
	return false
}

// upsertWeatherDelay creates the delay record for (supplier, delivery date)
// or refreshes the existing one.
func (s *weatherService) upsertWeatherDelay(ctx context.Context, sup *model.Supplier, date time.Time, description string) error {
	notes := "Adverse weather on scheduled delivery: " + description

	existing, err := s.records.FindByMetricAndDate(ctx, sup.ID, weatherDelayMetric, date)
	if err == nil {
		existing.Status = "delayed"
		existing.Notes = &notes
		return s.records.Update(ctx, existing)
	}

	return s.records.Create(ctx, &model.ComplianceRecord{
		SupplierID:   sup.ID,
		Metric:       weatherDelayMetric,
		DateRecorded: date,
		Status:       "delayed",
		Notes:        &notes,
	})
}

// notifyOwner queues an alert email to the supplier's owner. Best-effort:
// a full queue or missing owner only logs.
func (s *weatherService) notifyOwner(ctx context.Context, sup *model.Supplier, deliveryDate, description string) {
	if s.dispatcher == nil {
		return
	}
	owner, err := s.users.FindByID(ctx, sup.UserID)
	if err != nil {
		log.Warn().Str("supplier", sup.Name).Msg("weather impact: owner not found, skipping alert")
		return
	}

	payload := worker.EmailJobPayload{
		ToEmail: owner.Email,
		Subject: fmt.Sprintf("Delivery alert: adverse weather for %s on %s", sup.Name, deliveryDate),
		Body: fmt.Sprintf("Adverse weather (%s) is forecast for the delivery from %s scheduled on %s. "+
			"A weather delay has been recorded against the supplier's compliance history.",
			description, sup.Name, deliveryDate),
	}
	if err := s.dispatcher.EnqueueEmail(ctx, payload); err != nil {
		log.Error().Err(err).Msg("weather impact: failed to enqueue alert email")
	}
}

func buildImpactPrompt(supplierName string, req dto.CheckImpactRequest, description string) string {
	return fmt.Sprintf(`Delivery scheduled for %s at lat %f, lon %f for supplier %s.
Weather forecast: '%s'.
Advise if delivery may be affected and what actions to take. Format your response for a business/procurement dashboard, with a clear summary and bullet points for actions.
`, req.DeliveryDate, req.Latitude, req.Longitude, supplierName, description)
}
