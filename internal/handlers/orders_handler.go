package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imrishuroy/quickstore/internal/app"
	"github.com/imrishuroy/quickstore/internal/checkout"
	"github.com/imrishuroy/quickstore/internal/idempotency"
	"github.com/imrishuroy/quickstore/internal/orders"
	"github.com/imrishuroy/quickstore/internal/validation"
)

func checkoutRequest(req validation.CheckoutRequest) checkout.Request {
	return checkout.Request{
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   orders.PaymentMethod(req.PaymentMethod),
	}
}

// replay answers a request whose Idempotency-Key was already seen.
func replay(c *gin.Context, rec *idempotency.Record) {
	switch rec.Status {
	case idempotency.StatusDone:
		if rec.ResponseBody != "" && json.Valid([]byte(rec.ResponseBody)) {
			c.Data(rec.ResponseStatus, "application/json", []byte(rec.ResponseBody))
			return
		}
		c.JSON(http.StatusOK, gin.H{"order_id": rec.OrderID})
	case idempotency.StatusInProgress:
		c.JSON(http.StatusAccepted, gin.H{"message": "request already in progress"})
	case idempotency.StatusFailed:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "previous_attempt_failed"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unknown_idempotency_status"})
	}
}

func registerOrdersRoutes(r *gin.Engine, a *app.App) {
	r.POST("/checkout/preview", func(c *gin.Context) {
		var req validation.CheckoutRequest
		if err := validation.BindAndValidate(c, &req, a.Validator); err != nil {
			return
		}
		att, err := a.Checkout.Begin(c.Request.Context(), checkoutRequest(req))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"items":           att.Items,
			"shippingAddress": att.Address,
			"paymentMethod":   att.PaymentMethod,
			"totals":          att.Totals.View(),
		})
	})

	r.POST("/checkout", func(c *gin.Context) {
		ctx := c.Request.Context()

		var req validation.CheckoutRequest
		if err := validation.BindAndValidate(c, &req, a.Validator); err != nil {
			return
		}

		// Optional: without a key every POST is a new attempt.
		idempKey := c.GetHeader("Idempotency-Key")
		if idempKey != "" {
			created, err := a.Idempotency.CreateIfNotExists(ctx, idempKey)
			if err != nil {
				writeError(c, err)
				return
			}
			if !created {
				rec, err := a.Idempotency.Get(ctx, idempKey)
				if err != nil {
					writeError(c, err)
					return
				}
				if rec == nil {
					c.JSON(http.StatusConflict, gin.H{"error": "idempotency_key_expired"})
					return
				}
				replay(c, rec)
				return
			}
		}

		res, err := a.Checkout.Checkout(ctx, checkoutRequest(req))
		if err != nil {
			if idempKey != "" {
				if merr := a.Idempotency.MarkFailed(ctx, idempKey, err.Error()); merr != nil {
					log.Printf("[http] mark idempotency failed key=%s: %v", idempKey, merr)
				}
			}
			writeError(c, err)
			return
		}

		body := gin.H{
			"order":   res.Order,
			"link":    res.Link,
			"message": res.Message,
		}
		if res.HandoffErr != nil {
			body["handoffError"] = res.HandoffErr.Error()
		}
		if idempKey != "" {
			raw, _ := json.Marshal(body)
			if err := a.Idempotency.MarkDone(ctx, idempKey, res.Order.ID, string(raw), http.StatusCreated); err != nil {
				log.Printf("[http] mark idempotency done key=%s: %v", idempKey, err)
			}
		}

		c.Header("Location", fmt.Sprintf("/orders/%s", res.Order.ID))
		c.JSON(http.StatusCreated, body)
	})

	r.GET("/orders", func(c *gin.Context) {
		list, err := a.MyOrders(c.Request.Context(), c.Query("all") == "true")
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": list})
	})

	r.GET("/orders/:id", func(c *gin.Context) {
		o, err := a.Orders.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	})

	// Unknown ids are accepted silently, matching orders.Repository.UpdateStatus.
	r.PATCH("/orders/:id/status", func(c *gin.Context) {
		var req validation.StatusRequest
		if err := validation.BindAndValidate(c, &req, a.Validator); err != nil {
			return
		}
		if err := a.Orders.UpdateStatus(c.Request.Context(), c.Param("id"), orders.Status(req.Status)); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
}
