package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imrishuroy/quickstore/internal/app"
	"github.com/imrishuroy/quickstore/internal/products"
	"github.com/imrishuroy/quickstore/internal/validation"
)

func registerCatalogRoutes(r *gin.Engine, a *app.App) {
	r.GET("/products", func(c *gin.Context) {
		list, err := a.Products.List(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": list})
	})

	r.GET("/products/:id", func(c *gin.Context) {
		p, err := a.Products.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	})

	r.POST("/products", func(c *gin.Context) {
		var req products.NewProduct
		if err := validation.BindAndValidate(c, &req, a.Validator); err != nil {
			return
		}
		p, err := a.Products.Create(c.Request.Context(), req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.Header("Location", "/products/"+p.ID)
		c.JSON(http.StatusCreated, p)
	})

	r.PATCH("/products/:id", func(c *gin.Context) {
		var req products.Patch
		if err := validation.BindAndValidate(c, &req, a.Validator); err != nil {
			return
		}
		p, err := a.Products.Update(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	})

	r.DELETE("/products/:id", func(c *gin.Context) {
		if err := a.Products.Delete(c.Request.Context(), c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	r.GET("/favorites", func(c *gin.Context) {
		ids, err := a.Favorites.List(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"favorites": ids})
	})

	r.POST("/favorites/:productId/toggle", func(c *gin.Context) {
		ids, added, err := a.ToggleFavorite(c.Request.Context(), c.Param("productId"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"favorites": ids,
			"favorite":  added,
			"message":   app.FavoriteMessage(added),
		})
	})
}
