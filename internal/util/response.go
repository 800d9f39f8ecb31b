package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform response wrapper. Data and Token are mutually
// exclusive: auth endpoints fill Token, everything else fills Data.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Token   string      `json:"token,omitempty"`
	Message string      `json:"message"`
}

// Success writes a 200 envelope with a data payload.
func Success(c *gin.Context, data interface{}, msg string) {
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    data,
		Message: msg,
	})
}

// Token writes a 200 envelope carrying a session token.
func Token(c *gin.Context, token, msg string) {
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Token:   token,
		Message: msg,
	})
}

// Error writes an error envelope with the given HTTP status.
func Error(c *gin.Context, httpStatus int, msg string) {
	c.JSON(httpStatus, Envelope{
		Success: false,
		Message: msg,
	})
}
