package router

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"pocketbank/bank"
	"pocketbank/store"
)

// fail is the single translation point from error kinds to HTTP responses.
// Unknown errors become an opaque 500 so store internals never leak.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Resource not found"})
	case errors.Is(err, bank.ErrBadAmount),
		errors.Is(err, bank.ErrInsufficientFunds),
		errors.Is(err, bank.ErrInvalidDestination),
		errors.Is(err, bank.ErrRecipientUnavailable),
		errors.Is(err, bank.ErrMissingRecipientDetails),
		errors.Is(err, bank.ErrInvalidTransferType):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": message})
}
