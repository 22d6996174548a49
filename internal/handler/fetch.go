package handler

import (
	"net/http"
	"strconv"

	"asteroid-tracker/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// FetchRequest names the NeoWs date range. Dates may also be passed as
// start_date/end_date query parameters.
type FetchRequest struct {
	StartDate string `json:"start_date" form:"start_date"`
	EndDate   string `json:"end_date" form:"end_date"`
}

// FetchErrorResponse reports a failed fetch-and-store together with the
// number of records committed before the failure.
type FetchErrorResponse struct {
	Error    string `json:"error"`
	Category string `json:"category"`
	Created  int    `json:"created"`
}

// FetchAsteroids godoc
// @Summary      Fetch asteroids from NASA NeoWs and store them
// @Description  Fetches the feed for the date range, normalizes every entry and stores one record per asteroid
// @Tags         fetch
// @Accept       json
// @Produce      json
// @Param        range  body      FetchRequest  false  "Date range (YYYY-MM-DD)"
// @Param        start_date  query  string  false  "Start date (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "End date (YYYY-MM-DD)"
// @Success      200  {array}   domain.Asteroid
// @Failure      400  {object}  FetchErrorResponse
// @Failure      500  {object}  FetchErrorResponse
// @Failure      502  {object}  FetchErrorResponse
// @Security     ApiKeyAuth
// @Router       /asteroids/fetch [post]
func (h *Handler) FetchAsteroids(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.fetch-asteroids")
	defer span.End()

	var req FetchRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBadRequest(c, "invalid fetch request: "+err.Error())
			return
		}
	}
	if req.StartDate == "" {
		req.StartDate = c.Query("start_date")
	}
	if req.EndDate == "" {
		req.EndDate = c.Query("end_date")
	}
	span.SetAttributes(
		attribute.String("start_date", req.StartDate),
		attribute.String("end_date", req.EndDate),
	)

	created, err := h.asteroids.FetchAndStore(ctx, req.StartDate, req.EndDate)
	if err != nil {
		category := domain.Category(err)
		c.JSON(statusFor(category), FetchErrorResponse{
			Error:    err.Error(),
			Category: category,
			Created:  len(created),
		})
		return
	}
	c.JSON(http.StatusOK, created)
}

// ListFetchRuns godoc
// @Summary      Recent fetch runs
// @Description  Returns the newest fetch-and-store invocations first; empty when Redis is not configured
// @Tags         fetch
// @Produce      json
// @Param        limit  query  int  false  "Number of runs (max 50)"  default(10)
// @Success      200  {array}   domain.FetchRun
// @Failure      500  {object}  ErrorResponse
// @Router       /asteroids/fetch/runs [get]
func (h *Handler) ListFetchRuns(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.list-fetch-runs")
	defer span.End()

	limit := 0
	if l := c.Query("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil {
			writeBadRequest(c, "invalid limit: "+l)
			return
		}
		limit = n
	}

	runs, err := h.asteroids.RecentFetchRuns(ctx, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, runs)
}
