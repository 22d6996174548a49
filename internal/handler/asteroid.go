package handler

import (
	"net/http"
	"strconv"

	"asteroid-tracker/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// CreateAsteroidRequest requires every field; zero values are accepted when
// sent explicitly.
type CreateAsteroidRequest struct {
	Name                   *string  `json:"name" binding:"required"`
	NasaJPLURL             *string  `json:"nasa_jpl_url" binding:"required"`
	AbsoluteMagnitude      *float64 `json:"absolute_magnitude" binding:"required"`
	IsPotentiallyHazardous *bool    `json:"is_potentially_hazardous" binding:"required"`
	EstimatedDiameterMin   *float64 `json:"estimated_diameter_min" binding:"required"`
	EstimatedDiameterMax   *float64 `json:"estimated_diameter_max" binding:"required"`
	CloseApproachDate      *string  `json:"close_approach_date" binding:"required"`
	CloseApproachDateFull  *string  `json:"close_approach_date_full" binding:"required"`
	EpochDateCloseApproach *int64   `json:"epoch_date_close_approach" binding:"required"`
	RelativeVelocity       *float64 `json:"relative_velocity" binding:"required"`
	MissDistance           *float64 `json:"miss_distance" binding:"required"`
	OrbitingBody           *string  `json:"orbiting_body" binding:"required"`
}

func (r CreateAsteroidRequest) toDomain() domain.AsteroidCreate {
	return domain.AsteroidCreate{
		Name:                   *r.Name,
		NasaJPLURL:             *r.NasaJPLURL,
		AbsoluteMagnitude:      *r.AbsoluteMagnitude,
		IsPotentiallyHazardous: *r.IsPotentiallyHazardous,
		EstimatedDiameterMin:   *r.EstimatedDiameterMin,
		EstimatedDiameterMax:   *r.EstimatedDiameterMax,
		CloseApproachDate:      *r.CloseApproachDate,
		CloseApproachDateFull:  *r.CloseApproachDateFull,
		EpochDateCloseApproach: *r.EpochDateCloseApproach,
		RelativeVelocity:       *r.RelativeVelocity,
		MissDistance:           *r.MissDistance,
		OrbitingBody:           *r.OrbitingBody,
	}
}

// ListAsteroids godoc
// @Summary      List stored asteroids
// @Description  Returns a page of asteroids ordered by id
// @Tags         asteroids
// @Produce      json
// @Param        skip       query  int   false  "Records to skip (alias: offset)"  default(0)
// @Param        limit      query  int   false  "Page size (max 1000)"  default(100)
// @Param        hazardous  query  bool  false  "Filter by hazard flag"
// @Success      200  {array}   domain.Asteroid
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /asteroids [get]
func (h *Handler) ListAsteroids(c *gin.Context) {
	filter, ok := parseListFilter(c)
	if !ok {
		return
	}
	h.list(c, "handler.list-asteroids", filter)
}

// ListHazardous godoc
// @Summary      List potentially hazardous asteroids
// @Tags         asteroids
// @Produce      json
// @Success      200  {array}   domain.Asteroid
// @Failure      500  {object}  ErrorResponse
// @Router       /asteroids/filter/hazardous [get]
func (h *Handler) ListHazardous(c *gin.Context) {
	hazardous := true
	h.list(c, "handler.list-hazardous", domain.ListFilter{Hazardous: &hazardous})
}

// ListNotHazardous godoc
// @Summary      List asteroids that are not potentially hazardous
// @Tags         asteroids
// @Produce      json
// @Success      200  {array}   domain.Asteroid
// @Failure      500  {object}  ErrorResponse
// @Router       /asteroids/filter/not_hazardous [get]
func (h *Handler) ListNotHazardous(c *gin.Context) {
	hazardous := false
	h.list(c, "handler.list-not-hazardous", domain.ListFilter{Hazardous: &hazardous})
}

func (h *Handler) list(c *gin.Context, spanName string, filter domain.ListFilter) {
	ctx, span := h.tracer.Start(c.Request.Context(), spanName)
	defer span.End()

	asteroids, err := h.asteroids.ListAsteroids(ctx, filter)
	if err != nil {
		writeError(c, err)
		return
	}
	span.SetAttributes(attribute.Int("asteroids.count", len(asteroids)))
	c.JSON(http.StatusOK, asteroids)
}

// GetAsteroid godoc
// @Summary      Get an asteroid by id
// @Tags         asteroids
// @Produce      json
// @Param        id   path      int  true  "Asteroid id"
// @Success      200  {object}  domain.Asteroid
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /asteroids/{id} [get]
func (h *Handler) GetAsteroid(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-asteroid")
	defer span.End()

	id, ok := parseID(c)
	if !ok {
		return
	}
	span.SetAttributes(attribute.Int64("asteroid.id", id))

	asteroid, err := h.asteroids.GetAsteroid(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, asteroid)
}

// CreateAsteroid godoc
// @Summary      Create an asteroid
// @Tags         asteroids
// @Accept       json
// @Produce      json
// @Param        asteroid  body      CreateAsteroidRequest  true  "Asteroid record"
// @Success      200  {object}  domain.Asteroid
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Security     ApiKeyAuth
// @Router       /asteroids [post]
func (h *Handler) CreateAsteroid(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.create-asteroid")
	defer span.End()

	var req CreateAsteroidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "invalid asteroid payload: "+err.Error())
		return
	}

	asteroid, err := h.asteroids.CreateAsteroid(ctx, req.toDomain())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, asteroid)
}

// UpdateAsteroid godoc
// @Summary      Update an asteroid
// @Description  Applies only the fields present in the body and refreshes updated_at
// @Tags         asteroids
// @Accept       json
// @Produce      json
// @Param        id     path      int                   true  "Asteroid id"
// @Param        patch  body      domain.AsteroidPatch  true  "Fields to change"
// @Success      200  {object}  domain.Asteroid
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Security     ApiKeyAuth
// @Router       /asteroids/{id} [put]
func (h *Handler) UpdateAsteroid(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.update-asteroid")
	defer span.End()

	id, ok := parseID(c)
	if !ok {
		return
	}
	span.SetAttributes(attribute.Int64("asteroid.id", id))

	var patch domain.AsteroidPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		writeBadRequest(c, "invalid asteroid patch: "+err.Error())
		return
	}

	asteroid, err := h.asteroids.UpdateAsteroid(ctx, id, patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, asteroid)
}

// DeleteAsteroid godoc
// @Summary      Delete an asteroid
// @Tags         asteroids
// @Produce      json
// @Param        id   path      int  true  "Asteroid id"
// @Success      200  {object}  domain.DeletionReceipt
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Security     ApiKeyAuth
// @Router       /asteroids/{id} [delete]
func (h *Handler) DeleteAsteroid(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.delete-asteroid")
	defer span.End()

	id, ok := parseID(c)
	if !ok {
		return
	}
	span.SetAttributes(attribute.Int64("asteroid.id", id))

	receipt, err := h.asteroids.DeleteAsteroid(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeBadRequest(c, "invalid asteroid id: "+c.Param("id"))
		return 0, false
	}
	return id, true
}

func parseListFilter(c *gin.Context) (domain.ListFilter, bool) {
	var filter domain.ListFilter

	skip := c.Query("skip")
	if skip == "" {
		skip = c.Query("offset")
	}
	if skip != "" {
		n, err := strconv.Atoi(skip)
		if err != nil {
			writeBadRequest(c, "invalid skip: "+skip)
			return filter, false
		}
		filter.Offset = n
	}

	if l := c.Query("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil {
			writeBadRequest(c, "invalid limit: "+l)
			return filter, false
		}
		filter.Limit = n
	}

	if hz := c.Query("hazardous"); hz != "" {
		b, err := strconv.ParseBool(hz)
		if err != nil {
			writeBadRequest(c, "invalid hazardous flag: "+hz)
			return filter, false
		}
		filter.Hazardous = &b
	}
	return filter, true
}
