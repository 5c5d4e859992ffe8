package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imrishuroy/quickstore/internal/app"
	"github.com/imrishuroy/quickstore/internal/validation"
)

func cartView(a *app.App) gin.H {
	return gin.H{
		"items":  a.Cart.Items(),
		"count":  a.Cart.Count(),
		"totals": a.Cart.Totals().View(),
	}
}

func registerCartRoutes(r *gin.Engine, a *app.App) {
	r.GET("/cart", func(c *gin.Context) {
		c.JSON(http.StatusOK, cartView(a))
	})

	r.POST("/cart/items", func(c *gin.Context) {
		var req validation.CartItemRequest
		if err := validation.BindAndValidate(c, &req, a.Validator); err != nil {
			return
		}
		ch, err := a.AddToCart(c.Request.Context(), req.ProductID)
		if err != nil {
			writeError(c, err)
			return
		}
		body := cartView(a)
		body["change"] = ch
		body["message"] = ch.Message()
		c.JSON(http.StatusOK, body)
	})

	r.PATCH("/cart/items/:productId", func(c *gin.Context) {
		var req validation.QuantityRequest
		if err := validation.BindAndValidate(c, &req, a.Validator); err != nil {
			return
		}
		if err := a.Cart.UpdateQuantity(c.Request.Context(), c.Param("productId"), req.Delta); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, cartView(a))
	})

	r.DELETE("/cart/items/:productId", func(c *gin.Context) {
		ch, removed, err := a.Cart.Remove(c.Request.Context(), c.Param("productId"))
		if err != nil {
			writeError(c, err)
			return
		}
		body := cartView(a)
		if removed {
			body["change"] = ch
			body["message"] = ch.Message()
		}
		c.JSON(http.StatusOK, body)
	})
}
