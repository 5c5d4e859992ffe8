package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imrishuroy/quickstore/internal/app"
	"github.com/imrishuroy/quickstore/internal/validation"
)

func registerReviewsRoutes(r *gin.Engine, a *app.App) {
	r.GET("/reviews", func(c *gin.Context) {
		list, err := a.Reviews.List(c.Request.Context(), c.Query("productId"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"reviews": list})
	})

	r.GET("/reviews/eligibility", func(c *gin.Context) {
		productID := c.Query("productId")
		if productID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing_product_id"})
			return
		}
		ok, err := a.CanReview(c.Request.Context(), productID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"eligible": ok})
	})

	r.POST("/reviews", func(c *gin.Context) {
		var req validation.ReviewRequest
		if err := validation.BindAndValidate(c, &req, a.Validator); err != nil {
			return
		}
		rv, err := a.CreateReview(c.Request.Context(), req.ProductID, req.Rating, req.Comment)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, rv)
	})

	r.DELETE("/reviews/:id", func(c *gin.Context) {
		if err := a.Reviews.Delete(c.Request.Context(), c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
}
