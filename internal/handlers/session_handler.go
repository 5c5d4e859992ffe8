package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imrishuroy/quickstore/internal/app"
	"github.com/imrishuroy/quickstore/internal/session"
	"github.com/imrishuroy/quickstore/internal/validation"
)

func registerSessionRoutes(r *gin.Engine, a *app.App) {
	r.POST("/session/login", func(c *gin.Context) {
		var req validation.LoginRequest
		if err := validation.BindAndValidate(c, &req, a.Validator); err != nil {
			return
		}
		u, err := a.Session.Login(c.Request.Context(), req.Mobile, req.Name, req.Email)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": u})
	})

	// A guest gets {"user": null}.
	r.GET("/session", func(c *gin.Context) {
		u, err := a.Session.Current(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": u})
	})

	r.PATCH("/session", func(c *gin.Context) {
		var req validation.ProfileRequest
		if err := validation.BindAndValidate(c, &req, a.Validator); err != nil {
			return
		}
		u, err := a.Session.UpdateProfile(c.Request.Context(), session.Patch{
			Name:    req.Name,
			Email:   req.Email,
			Address: req.Address,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": u})
	})

	r.POST("/session/logout", func(c *gin.Context) {
		if err := a.Session.Logout(c.Request.Context()); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
}
