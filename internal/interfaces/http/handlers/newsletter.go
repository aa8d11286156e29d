// internal/interfaces/http/handlers/newsletter.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/your-org/storefront-backend/internal/domain/newsletter"
)

// NewsletterHandler handles newsletter endpoints
type NewsletterHandler struct {
	newsletterService *newsletter.Service
}

// NewNewsletterHandler creates a new newsletter handler
func NewNewsletterHandler(db *gorm.DB) *NewsletterHandler {
	return &NewsletterHandler{
		newsletterService: newsletter.NewService(db),
	}
}

// Subscribe handles POST /newsletter/subscribe. Subscribing an address
// that is already subscribed succeeds without creating a duplicate.
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req newsletter.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	sub, created, err := h.newsletterService.Subscribe(req.Email)
	if err != nil {
		respondServerError(c, "Failed to subscribe", err)
		return
	}

	status := http.StatusOK
	message := "Already subscribed"
	if created {
		status = http.StatusCreated
		message = "Subscribed successfully"
	}

	c.JSON(status, gin.H{
		"message":    message,
		"subscriber": sub,
	})
}

// Unsubscribe handles POST /newsletter/unsubscribe
func (h *NewsletterHandler) Unsubscribe(c *gin.Context) {
	var req newsletter.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if err := h.newsletterService.Unsubscribe(req.Email); err != nil {
		if errors.Is(err, newsletter.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
			return
		}
		respondServerError(c, "Failed to unsubscribe", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Unsubscribed successfully"})
}

// ListSubscribers handles GET /newsletter/subscribers (admin)
func (h *NewsletterHandler) ListSubscribers(c *gin.Context) {
	var (
		subs []newsletter.Subscriber
		err  error
	)
	if c.Query("all") == "true" {
		subs, err = h.newsletterService.ListAll()
	} else {
		subs, err = h.newsletterService.ListActive()
	}
	if err != nil {
		respondServerError(c, "Failed to list subscribers", err)
		return
	}

	c.JSON(http.StatusOK, subs)
}
