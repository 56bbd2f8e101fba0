package handler

import (
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func respondError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, errorResponse{Error: code, Message: message})
}
