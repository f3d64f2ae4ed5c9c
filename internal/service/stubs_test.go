package service

import (
	"context"
	"errors"
	"time"

	"github.com/sankalp-nadiger/Auditryx/internal/dto"
	"github.com/sankalp-nadiger/Auditryx/internal/model"
	"github.com/sankalp-nadiger/Auditryx/internal/repository"

	"github.com/google/uuid"
)

// ── Repository stubs ─────────────────────────────────────────────────────────

var errStubNotFound = errors.New("not found")

func dateYMD(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

// stubUserRepo is an in-memory UserRepository for testing.
type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errStubNotFound
	}
	return u, nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

// stubSupplierRepo preserves insertion order, like the real created_at sort.
type stubSupplierRepo struct {
	suppliers []*model.Supplier
}

func newStubSupplierRepo() *stubSupplierRepo { return &stubSupplierRepo{} }

func (r *stubSupplierRepo) Create(_ context.Context, s *model.Supplier) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.suppliers = append(r.suppliers, s)
	return nil
}

func (r *stubSupplierRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Supplier, error) {
	for _, s := range r.suppliers {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubSupplierRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]model.Supplier, error) {
	var out []model.Supplier
	for _, s := range r.suppliers {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubSupplierRepo) ListAll(_ context.Context) ([]model.Supplier, error) {
	out := make([]model.Supplier, 0, len(r.suppliers))
	for _, s := range r.suppliers {
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubSupplierRepo) Update(_ context.Context, s *model.Supplier) error {
	for i, existing := range r.suppliers {
		if existing.ID == s.ID {
			r.suppliers[i] = s
			return nil
		}
	}
	return errStubNotFound
}

func (r *stubSupplierRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, s := range r.suppliers {
		if s.ID == id {
			r.suppliers = append(r.suppliers[:i], r.suppliers[i+1:]...)
			return nil
		}
	}
	return errStubNotFound
}

var _ repository.SupplierRepository = (*stubSupplierRepo)(nil)

// stubComplianceRepo preserves insertion order.
type stubComplianceRepo struct {
	records []*model.ComplianceRecord
}

func newStubComplianceRepo() *stubComplianceRepo { return &stubComplianceRepo{} }

func (r *stubComplianceRepo) Create(_ context.Context, rec *model.ComplianceRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	r.records = append(r.records, rec)
	return nil
}

func (r *stubComplianceRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ComplianceRecord, error) {
	for _, rec := range r.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubComplianceRepo) ListAll(_ context.Context, offset, limit int) ([]model.ComplianceRecord, error) {
	out := make([]model.ComplianceRecord, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, *rec)
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubComplianceRepo) ListBySupplier(_ context.Context, supplierID uuid.UUID) ([]model.ComplianceRecord, error) {
	var out []model.ComplianceRecord
	for _, rec := range r.records {
		if rec.SupplierID == supplierID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *stubComplianceRepo) FindByMetricAndDate(_ context.Context, supplierID uuid.UUID, metric string, date time.Time) (*model.ComplianceRecord, error) {
	for _, rec := range r.records {
		if rec.SupplierID == supplierID && rec.Metric == metric && rec.DateRecorded.Equal(date) {
			return rec, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubComplianceRepo) Update(_ context.Context, rec *model.ComplianceRecord) error {
	for i, existing := range r.records {
		if existing.ID == rec.ID {
			r.records[i] = rec
			return nil
		}
	}
	return errStubNotFound
}

func (r *stubComplianceRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, rec := range r.records {
		if rec.ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return nil
		}
	}
	return errStubNotFound
}

var _ repository.ComplianceRepository = (*stubComplianceRepo)(nil)

// ── Port fakes ───────────────────────────────────────────────────────────────

type fakeGeocoder struct {
	fn func(place string) (float64, float64, error)
}

func (g *fakeGeocoder) Resolve(_ context.Context, place string) (float64, float64, error) {
	return g.fn(place)
}

var _ Geocoder = (*fakeGeocoder)(nil)

type fakeWeather struct {
	current func(lat, lon float64) (*dto.CurrentConditions, error)
	history func(lat, lon float64, days int) ([]dto.DailyConditions, error)
}

func (w *fakeWeather) Current(_ context.Context, lat, lon float64) (*dto.CurrentConditions, error) {
	return w.current(lat, lon)
}

func (w *fakeWeather) History(_ context.Context, lat, lon float64, days int) ([]dto.DailyConditions, error) {
	if w.history == nil {
		return nil, errors.New("history not stubbed")
	}
	return w.history(lat, lon, days)
}

var _ WeatherProvider = (*fakeWeather)(nil)

type fakeAdvisor struct {
	fn func(prompt string) (string, error)
}

func (a *fakeAdvisor) Generate(_ context.Context, prompt string) (string, error) {
	return a.fn(prompt)
}

var _ Advisor = (*fakeAdvisor)(nil)

type fakeReference struct {
	snapshot string
	err      error
}

func (r *fakeReference) Snapshot() (string, error) {
	return r.snapshot, r.err
}

var _ ReferenceSource = (*fakeReference)(nil)
