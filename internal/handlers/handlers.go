// Package handlers exposes the storefront over HTTP with gin.
package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imrishuroy/quickstore/internal/app"
	"github.com/imrishuroy/quickstore/internal/checkout"
	"github.com/imrishuroy/quickstore/internal/reviews"
	"github.com/imrishuroy/quickstore/internal/session"
	"github.com/imrishuroy/quickstore/internal/store"
)

// RegisterRoutes registers every storefront route on r.
func RegisterRoutes(r *gin.Engine, a *app.App) {
	registerCatalogRoutes(r, a)
	registerCartRoutes(r, a)
	registerOrdersRoutes(r, a)
	registerReviewsRoutes(r, a)
	registerSupportRoutes(r, a)
	registerSessionRoutes(r, a)
}

// writeError maps domain errors to status codes. Storage failures get a generic body.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": err.Error()})
	case errors.Is(err, session.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
	case errors.Is(err, checkout.ErrValidation), errors.Is(err, store.ErrInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": err.Error()})
	case errors.Is(err, reviews.ErrNotEligible):
		c.JSON(http.StatusForbidden, gin.H{"error": "not_eligible", "message": err.Error()})
	case errors.Is(err, checkout.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": "invalid_state"})
	default:
		log.Printf("[http] %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}
