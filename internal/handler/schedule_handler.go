package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bluescreenjay/autoscheduler-prototype-2/internal/dto"
	"github.com/bluescreenjay/autoscheduler-prototype-2/internal/service"
	appErrors "github.com/bluescreenjay/autoscheduler-prototype-2/pkg/errors"
	"github.com/bluescreenjay/autoscheduler-prototype-2/pkg/response"
)

// maxRosterRows bounds each inline table so one request cannot blow up
// the engine.
const maxRosterRows = 512

type scheduleGenerator interface {
	Generate(ctx context.Context, req dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error)
	Get(ctx context.Context, id string) (*dto.GenerateScheduleResponse, error)
	Report(ctx context.Context, id string) ([]byte, error)
	Delete(ctx context.Context, id string) error
}

// ScheduleHandler exposes the proposal endpoints.
type ScheduleHandler struct {
	service scheduleGenerator
}

// NewScheduleHandler constructs the handler.
func NewScheduleHandler(svc *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: svc}
}

// Register mounts the proposal routes.
func (h *ScheduleHandler) Register(r gin.IRouter) {
	r.POST("/schedules/generate", h.Generate)
	r.GET("/schedules/:id", h.Get)
	r.GET("/schedules/:id/report", h.Report)
	r.DELETE("/schedules/:id", h.Delete)
}

// Generate godoc
// @Summary Generate an interview schedule proposal
// @Description Runs the competing strategies over the inline rosters and returns the winning schedule.
// @Tags Scheduler
// @Accept json
// @Produce json
// @Param payload body dto.GenerateScheduleRequest true "Rosters and options"
// @Success 201 {object} response.Envelope
// @Router /schedules/generate [post]
func (h *ScheduleHandler) Generate(c *gin.Context) {
	var req dto.GenerateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid schedule payload"))
		return
	}
	if len(req.Applicants) > maxRosterRows || len(req.Recruiters) > maxRosterRows || len(req.Rooms) > maxRosterRows {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "roster too large"))
		return
	}
	resp, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, resp)
}

// Get godoc
// @Summary Fetch a stored proposal
// @Tags Scheduler
// @Produce json
// @Param id path string true "Proposal ID"
// @Success 200 {object} response.Envelope
// @Router /schedules/{id} [get]
func (h *ScheduleHandler) Get(c *gin.Context) {
	resp, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resp)
}

// Report godoc
// @Summary Download a proposal's schedule as CSV
// @Tags Scheduler
// @Produce text/csv
// @Param id path string true "Proposal ID"
// @Success 200 {string} string
// @Router /schedules/{id}/report [get]
func (h *ScheduleHandler) Report(c *gin.Context) {
	out, err := h.service.Report(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="main_schedule.csv"`)
	c.Data(http.StatusOK, "text/csv", out)
}

// Delete godoc
// @Summary Discard a stored proposal
// @Tags Scheduler
// @Param id path string true "Proposal ID"
// @Success 204 {object} nil
// @Router /schedules/{id} [delete]
func (h *ScheduleHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
