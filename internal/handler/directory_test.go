package handler

import (
	"net/http"
	"sort"
	"testing"

	"github.com/gramsehat/backend/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoryHandler_Hospitals(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/v1/hospitals", nil)

	require.Equal(t, http.StatusOK, w.Code)
	hospitals := decode[[]model.Hospital](t, w)
	assert.Len(t, hospitals, 3)
}

func TestDirectoryHandler_Doctors(t *testing.T) {
	s := newTestServer(t)

	t.Run("known hospital", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/v1/hospitals/1/doctors", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]model.Doctor](t, w), 3)
	})

	t.Run("unknown hospital is empty", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/v1/hospitals/99/doctors", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("invalid id", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/v1/hospitals/abc/doctors", nil)
		requireError(t, w, http.StatusBadRequest, CodeValidation)
	})
}

func TestDirectoryHandler_TimeSlots(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/v1/time-slots", nil)

	require.Equal(t, http.StatusOK, w.Code)
	slots := decode[[]string](t, w)
	assert.Contains(t, slots, "09:00 AM")
}

func TestDirectoryHandler_Medicines(t *testing.T) {
	s := newTestServer(t)

	t.Run("lowest price is sorted by price", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/v1/medicines?filter=lowest_price", nil)
		require.Equal(t, http.StatusOK, w.Code)

		meds := decode[[]model.Medicine](t, w)
		require.NotEmpty(t, meds)
		assert.True(t, sort.SliceIsSorted(meds, func(i, j int) bool { return meds[i].Price < meds[j].Price }))
	})

	t.Run("in stock only", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/v1/medicines?filter=in_stock", nil)
		require.Equal(t, http.StatusOK, w.Code)

		for _, m := range decode[[]model.Medicine](t, w) {
			assert.True(t, m.InStock, m.Name)
		}
	})

	t.Run("no match", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/v1/medicines?q=zzzzzz", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("unknown filter", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/v1/medicines?filter=cheapest", nil)
		requireError(t, w, http.StatusBadRequest, CodeValidation)
	})
}

func TestDirectoryHandler_EmergencyAndLabReport(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/v1/emergency", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]any](t, w)
	assert.NotEmpty(t, body["contacts"])
	assert.NotNil(t, body["nearest_hospital"])

	w = s.do(http.MethodGet, "/api/v1/lab-report", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decode[map[string]any](t, w)
	assert.NotNil(t, body["report"])
	assert.NotEmpty(t, body["summary"])
}

func TestDirectoryHandler_DownloadLabReport(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/v1/lab-report/pdf", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "lab-report-NH2024001.pdf")
	assert.Equal(t, "%PDF", w.Body.String()[:4])
}
