package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"csv-insight-service/internal/core/domain"
)

const msgNoUpload = "No CSV file uploaded yet. Please upload a file first."

func mapDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": msgNoUpload})

	// Bad request / validation errors
	case errors.Is(err, domain.ErrMissingFile),
		errors.Is(err, domain.ErrEmptyQuestion),
		errors.Is(err, domain.ErrUnsupportedFormat),
		errors.Is(err, domain.ErrDatasetParse),
		errors.Is(err, domain.ErrEmptyDataset):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrUploadTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})

	default:
		log.WithError(err).Error("unhandled error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
