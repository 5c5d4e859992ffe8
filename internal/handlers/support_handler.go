package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imrishuroy/quickstore/internal/app"
	"github.com/imrishuroy/quickstore/internal/tickets"
	"github.com/imrishuroy/quickstore/internal/validation"
)

func registerSupportRoutes(r *gin.Engine, a *app.App) {
	r.GET("/tickets", func(c *gin.Context) {
		list, err := a.MyTickets(c.Request.Context(), c.Query("all") == "true")
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"tickets": list})
	})

	r.POST("/tickets", func(c *gin.Context) {
		var req validation.TicketRequest
		if err := validation.BindAndValidate(c, &req, a.Validator); err != nil {
			return
		}
		t, err := a.OpenTicket(c.Request.Context(), req.Subject, req.Message)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, t)
	})

	r.POST("/tickets/:id/replies", func(c *gin.Context) {
		var req validation.ReplyRequest
		if err := validation.BindAndValidate(c, &req, a.Validator); err != nil {
			return
		}
		t, err := a.Tickets.AddReply(c.Request.Context(), c.Param("id"), tickets.Sender(req.Sender), req.Message)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, t)
	})

	r.PATCH("/tickets/:id/status", func(c *gin.Context) {
		var req validation.StatusRequest
		if err := validation.BindAndValidate(c, &req, a.Validator); err != nil {
			return
		}
		t, err := a.Tickets.UpdateStatus(c.Request.Context(), c.Param("id"), tickets.Status(req.Status))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, t)
	})

	r.GET("/dashboard/stats", func(c *gin.Context) {
		d, err := a.Stats.Compute(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, d)
	})

	r.GET("/support/link", func(c *gin.Context) {
		subject := c.DefaultQuery("subject", "General Inquiry")
		link, err := a.SupportLink(c.Request.Context(), subject)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"link": link})
	})
}
