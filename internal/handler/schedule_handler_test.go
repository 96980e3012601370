package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluescreenjay/autoscheduler-prototype-2/internal/dto"
	appErrors "github.com/bluescreenjay/autoscheduler-prototype-2/pkg/errors"
)

type generatorStub struct {
	generated   *dto.GenerateScheduleResponse
	report      []byte
	generateErr error
	getErr      error
	reportErr   error
	deleteErr   error
	lastRequest dto.GenerateScheduleRequest
}

func (s *generatorStub) Generate(_ context.Context, req dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error) {
	s.lastRequest = req
	if s.generateErr != nil {
		return nil, s.generateErr
	}
	return s.generated, nil
}

func (s *generatorStub) Get(_ context.Context, id string) (*dto.GenerateScheduleResponse, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.generated, nil
}

func (s *generatorStub) Report(_ context.Context, id string) ([]byte, error) {
	if s.reportErr != nil {
		return nil, s.reportErr
	}
	return s.report, nil
}

func (s *generatorStub) Delete(_ context.Context, id string) error {
	return s.deleteErr
}

func newRouter(stub *generatorStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := &ScheduleHandler{service: stub}
	h.Register(r)
	return r
}

func validPayload() dto.GenerateScheduleRequest {
	start := time.Date(2025, time.September, 11, 17, 0, 0, 0, time.UTC)
	window := []dto.TimeRange{{Start: start, End: start.Add(4 * time.Hour)}}
	return dto.GenerateScheduleRequest{
		Applicants: []dto.ApplicantInput{{Email: "a1@luma.test", Availability: window}},
		Recruiters: []dto.RecruiterInput{{ID: "r1", Team: "Astra", Availability: window}},
		Rooms:      []dto.RoomInput{{ID: "room-a", Availability: window}},
	}
}

func TestScheduleHandlerGenerate(t *testing.T) {
	stub := &generatorStub{generated: &dto.GenerateScheduleResponse{ProposalID: "p-1", Strategy: "two_phase"}}
	router := newRouter(stub)

	body, err := json.Marshal(validPayload())
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/schedules/generate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "p-1")
	assert.Len(t, stub.lastRequest.Applicants, 1)
}

func TestScheduleHandlerGenerateRejectsBadJSON(t *testing.T) {
	router := newRouter(&generatorStub{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/schedules/generate", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), appErrors.ErrValidation.Code)
}

func TestScheduleHandlerGenerateRejectsOversizedRoster(t *testing.T) {
	router := newRouter(&generatorStub{})

	payload := validPayload()
	for i := 0; i <= maxRosterRows; i++ {
		payload.Rooms = append(payload.Rooms, payload.Rooms[0])
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/schedules/generate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "roster too large")
}

func TestScheduleHandlerGet(t *testing.T) {
	stub := &generatorStub{generated: &dto.GenerateScheduleResponse{ProposalID: "p-2"}}
	router := newRouter(stub)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/schedules/p-2", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "p-2")
}

func TestScheduleHandlerGetNotFound(t *testing.T) {
	stub := &generatorStub{getErr: appErrors.Clone(appErrors.ErrNotFound, "proposal not found or expired")}
	router := newRouter(stub)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/schedules/missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), appErrors.ErrNotFound.Code)
}

func TestScheduleHandlerReport(t *testing.T) {
	stub := &generatorStub{report: []byte("Time,Type,Room,Recruiters,Applicants\n")}
	router := newRouter(stub)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/schedules/p-2/report", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "Time,Type,Room")
}

func TestScheduleHandlerDelete(t *testing.T) {
	router := newRouter(&generatorStub{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/schedules/p-3", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
}
