package service

import (
	"context"
	"math"
	"testing"

	"github.com/sankalp-nadiger/Auditryx/internal/dto"
	"github.com/sankalp-nadiger/Auditryx/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newComplianceFixture(t *testing.T) (ComplianceService, *model.Supplier) {
	t.Helper()
	suppliers := newStubSupplierRepo()
	records := newStubComplianceRepo()

	sup := &model.Supplier{Name: "Acme", Country: "Germany", UserID: uuid.New()}
	require.NoError(t, suppliers.Create(context.Background(), sup))

	return NewComplianceService(records, suppliers), sup
}

func TestComplianceCreate(t *testing.T) {
	svc, sup := newComplianceFixture(t)

	resp, err := svc.Create(context.Background(), dto.CreateComplianceRecordRequest{
		SupplierID:   sup.ID.String(),
		Metric:       "delivery_time",
		DateRecorded: "2026-03-15",
		Result:       f(8.5),
		Status:       "pass",
	})
	require.NoError(t, err)

	assert.Equal(t, sup.ID.String(), resp.SupplierID)
	assert.Equal(t, "2026-03-15", resp.DateRecorded)
	require.NotNil(t, resp.Result)
	assert.Equal(t, 8.5, *resp.Result)
}

func TestComplianceCreate_UnknownSupplier(t *testing.T) {
	svc, _ := newComplianceFixture(t)

	_, err := svc.Create(context.Background(), dto.CreateComplianceRecordRequest{
		SupplierID:   uuid.New().String(),
		Metric:       "delivery_time",
		DateRecorded: "2026-03-15",
		Status:       "pass",
	})
	assert.ErrorIs(t, err, ErrSupplierNotFound)
}

func TestComplianceCreate_InvalidDate(t *testing.T) {
	svc, sup := newComplianceFixture(t)

	_, err := svc.Create(context.Background(), dto.CreateComplianceRecordRequest{
		SupplierID:   sup.ID.String(),
		Metric:       "delivery_time",
		DateRecorded: "15/03/2026",
		Status:       "pass",
	})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestComplianceCreate_NonFiniteResult(t *testing.T) {
	svc, sup := newComplianceFixture(t)

	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := svc.Create(context.Background(), dto.CreateComplianceRecordRequest{
			SupplierID:   sup.ID.String(),
			Metric:       "delivery_time",
			DateRecorded: "2026-03-15",
			Result:       f(bad),
			Status:       "pass",
		})
		assert.ErrorIs(t, err, ErrInvalidResult)
	}
}

func TestComplianceUpdate(t *testing.T) {
	svc, sup := newComplianceFixture(t)

	created, err := svc.Create(context.Background(), dto.CreateComplianceRecordRequest{
		SupplierID:   sup.ID.String(),
		Metric:       "delivery_time",
		DateRecorded: "2026-03-15",
		Status:       "pending",
	})
	require.NoError(t, err)

	status := "pass"
	updated, err := svc.Update(context.Background(), uuid.MustParse(created.ID), dto.UpdateComplianceRecordRequest{
		Status: &status,
		Result: f(9.0),
	})
	require.NoError(t, err)

	assert.Equal(t, "pass", updated.Status)
	assert.Equal(t, "delivery_time", updated.Metric) // untouched
	require.NotNil(t, updated.Result)
	assert.Equal(t, 9.0, *updated.Result)
}

func TestComplianceUpdate_NotFound(t *testing.T) {
	svc, _ := newComplianceFixture(t)

	status := "pass"
	_, err := svc.Update(context.Background(), uuid.New(), dto.UpdateComplianceRecordRequest{Status: &status})
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestComplianceDelete_ReturnsDeletedRecord(t *testing.T) {
	svc, sup := newComplianceFixture(t)

	created, err := svc.Create(context.Background(), dto.CreateComplianceRecordRequest{
		SupplierID:   sup.ID.String(),
		Metric:       "quality",
		DateRecorded: "2026-03-15",
		Status:       "pass",
	})
	require.NoError(t, err)

	deleted, err := svc.Delete(context.Background(), uuid.MustParse(created.ID))
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = svc.Delete(context.Background(), uuid.MustParse(created.ID))
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestComplianceListBySupplier_InsertionOrder(t *testing.T) {
	svc, sup := newComplianceFixture(t)

	for _, metric := range []string{"first", "second", "third"} {
		_, err := svc.Create(context.Background(), dto.CreateComplianceRecordRequest{
			SupplierID:   sup.ID.String(),
			Metric:       metric,
			DateRecorded: "2026-03-15",
			Status:       "pass",
		})
		require.NoError(t, err)
	}

	list, err := svc.ListBySupplier(context.Background(), sup.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "first", list[0].Metric)
	assert.Equal(t, "third", list[2].Metric)
}
