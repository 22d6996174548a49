package handler

import (
	"net/http"

	"asteroid-tracker/internal/domain"

	"github.com/gin-gonic/gin"
)

var categoryStatus = map[string]int{
	domain.CategoryInvalidRange:        http.StatusBadRequest,
	domain.CategoryInvalidRequest:      http.StatusBadRequest,
	domain.CategoryNotFound:            http.StatusNotFound,
	domain.CategoryConfiguration:       http.StatusInternalServerError,
	domain.CategoryUpstreamUnavailable: http.StatusBadGateway,
	domain.CategoryMalformedResponse:   http.StatusBadGateway,
	domain.CategoryStorage:             http.StatusInternalServerError,
	domain.CategoryUnauthorized:        http.StatusUnauthorized,
	domain.CategoryForbidden:           http.StatusForbidden,
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error    string `json:"error"`
	Category string `json:"category"`
}

func statusFor(category string) int {
	if status, ok := categoryStatus[category]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func writeError(c *gin.Context, err error) {
	category := domain.Category(err)
	c.JSON(statusFor(category), ErrorResponse{Error: err.Error(), Category: category})
}

func writeBadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg, Category: domain.CategoryInvalidRequest})
}
