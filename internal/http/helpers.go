package http

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// --- Response Types ---

// ErrorResponse is the standard error body for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the standard body for successful mutations.
type MessageResponse struct {
	Message string `json:"message"`
}

// SuccessResponse reports a bare success flag, the admin panel's
// mutation contract.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// --- Error Response Helpers ---

// RespondBadRequest sends a 400 Bad Request response.
func RespondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// RespondUnauthorized sends a 401 Unauthorized response.
func RespondUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, ErrorResponse{Error: message})
}

// RespondNotFound sends a 404 Not Found response.
func RespondNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: message})
}

// RespondInternalError logs the error and sends a 500 response without
// leaking store internals to the caller.
func RespondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// --- Parameter Parsing ---

// ParseIDParam validates a numeric ID from the URL path. A non-numeric
// value yields a 400 with the resource-specific message the API promises
// ("Invalid book ID format"), distinct from the 404 of unmatched routes.
func ParseIDParam(c *gin.Context, paramName, resource string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(paramName), 10, 32)
	if err != nil {
		RespondBadRequest(c, "Invalid "+resource+" ID format")
		return 0, false
	}
	return uint(id), true
}
