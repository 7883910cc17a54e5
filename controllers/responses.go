package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/Kariqs/orders-api/repository"
	"github.com/Kariqs/orders-api/services"
	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequestBody    = "Invalid request body"
	msgMissingRequiredFields = "Missing required fields"
	msgInvalidOrderStatus    = "Invalid order status"
	msgInvalidID             = "Invalid id"
	msgOrderNotFound         = "Order not found"
	msgCustomerNotFound      = "Customer not found"
	msgInvalidSignature      = "Invalid signature"
	msgBodyTooLarge          = "Request body too large"
	msgInternalServerError   = "Internal server error"
)

func sendJSONResponse(ctx *gin.Context, status int, data any) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"error": message})
}

// respondWithError maps service and repository errors to a status code and
// a message safe to show the caller.
func respondWithError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		sendErrorResponse(ctx, http.StatusBadRequest, msgMissingRequiredFields)
	case errors.Is(err, services.ErrInvalidStatus):
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidOrderStatus)
	case errors.Is(err, repository.ErrOrderNotFound):
		sendErrorResponse(ctx, http.StatusNotFound, msgOrderNotFound)
	case errors.Is(err, repository.ErrCustomerNotFound):
		sendErrorResponse(ctx, http.StatusNotFound, msgCustomerNotFound)
	case errors.Is(err, repository.ErrSchemaMissing), errors.Is(err, repository.ErrDatabaseUnavailable):
		log.Println(err)
		var missing *repository.MissingTableError
		if errors.As(err, &missing) {
			sendErrorResponse(ctx, http.StatusInternalServerError, missing.Error())
			return
		}
		sendErrorResponse(ctx, http.StatusInternalServerError, err.Error())
	default:
		log.Println(err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
	}
}

func parseID(ctx *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(param), 10, 64)
	if err != nil || id == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidID)
		return 0, false
	}
	return uint(id), true
}
