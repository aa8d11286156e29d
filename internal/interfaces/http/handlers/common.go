// internal/interfaces/http/handlers/common.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/your-org/storefront-backend/internal/domain/product"
)

// requestBaseURL reconstructs the scheme+host of the current request
// for building absolute media URLs.
func requestBaseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}

// parseIDParam parses a numeric path parameter.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + name,
		})
		return 0, false
	}
	return uint(id), true
}

// respondValidationError writes a field-keyed 400 response when err is
// a validation failure, and reports whether it handled the error.
func respondValidationError(c *gin.Context, err error) bool {
	var ve *product.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{
			"errors": gin.H{ve.Field: ve.Message},
		})
		return true
	}
	return false
}

// respondServerError writes the uniform 500 payload.
func respondServerError(c *gin.Context, msg string, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":  msg,
		"detail": err.Error(),
	})
}
