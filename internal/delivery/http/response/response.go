package response

import (
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error" example:"Missing required fields."`
}

// ContactResponse is the body of an accepted contact submission
type ContactResponse struct {
	Success bool   `json:"success" example:"true"`
	ID      string `json:"id" example:"<0f8fad5b-d9cb-469f-a165-70867728950e@example.com>"`
}

// HealthResponse is the body of the health check
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// Success sends a success response
func Success(c *gin.Context, code int, body interface{}) {
	c.JSON(code, body)
}

// Error sends an error response
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{Error: message})
}
