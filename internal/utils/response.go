package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Responses are flat JSON objects shaped {"success": bool, "message": string,
// ...payload}. Payload keys are merged at the top level next to success.

func respond(c *gin.Context, statusCode int, success bool, message string, payload gin.H) {
	body := gin.H{"success": success}
	if message != "" {
		body["message"] = message
	}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(statusCode, body)
}

// Success sends a 200 response with the given payload merged in.
func Success(c *gin.Context, message string, payload gin.H) {
	respond(c, http.StatusOK, true, message, payload)
}

// Created sends a 201 response with the given payload merged in.
func Created(c *gin.Context, message string, payload gin.H) {
	respond(c, http.StatusCreated, true, message, payload)
}

// Error sends an error response with the given status code.
func Error(c *gin.Context, statusCode int, message string) {
	respond(c, statusCode, false, message, nil)
}

// BadRequest sends a 400 Bad Request error response (validation failures and
// schedule conflicts).
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 Unauthorized error response.
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// Forbidden sends a 403 Forbidden error response.
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}

// NotFound sends a 404 Not Found error response.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// InternalServerError sends a 500 response echoing the raw error message.
func InternalServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}
