package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"dropoff-intake-api/middleware"
	"dropoff-intake-api/models"
	"dropoff-intake-api/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SubmissionStore is the storage behaviour the handlers depend on.
type SubmissionStore interface {
	Create(ctx context.Context, in models.SubmissionInput) (int64, error)
	List(ctx context.Context, includeCompleted bool) ([]models.Submission, error)
	UpdateStatus(ctx context.Context, id int64, update models.StatusUpdate) (int64, error)
}

// Notifier is told about every stored submission, off the request path.
// It may be nil.
type Notifier interface {
	SubmissionReceived(id int64, in models.SubmissionInput) error
}

type SubmissionController struct {
	store    SubmissionStore
	notifier Notifier
	log      *zap.Logger
}

func NewSubmissionController(store SubmissionStore, notifier Notifier, log *zap.Logger) *SubmissionController {
	if log == nil {
		log = zap.NewNop()
	}
	return &SubmissionController{store: store, notifier: notifier, log: log}
}

// maxBodyBytes caps request bodies on the JSON endpoints.
const maxBodyBytes = 64 << 10

type submissionURI struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// CreateSubmission handles POST /api/submit from the public intake form.
func (h *SubmissionController) CreateSubmission(c *gin.Context) {
	var input models.SubmissionInput
	if err := readJSON(c, &input); err != nil {
		badBody(c, err)
		return
	}

	id, err := h.store.Create(c.Request.Context(), input)
	if err != nil {
		h.logError(c, "Failed to create submission", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save submission"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Submission received",
		"id":      id,
	})

	// Mail goes out after the response; the intake form never waits on SMTP.
	if h.notifier != nil {
		go h.notify(id, input, c.GetString(middleware.RequestIDKey))
	}
}

func (h *SubmissionController) notify(id int64, input models.SubmissionInput, requestID string) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Error("Submission notifier panicked", zap.Int64("id", id), zap.Any("panic", r))
		}
	}()
	if err := h.notifier.SubmissionReceived(id, input); err != nil {
		h.log.Warn("Failed to send submission notification",
			zap.Int64("id", id),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
	}
}

// GetSubmissions handles GET /api/submissions?showAll=true
func (h *SubmissionController) GetSubmissions(c *gin.Context) {
	includeCompleted := c.Query("showAll") == "true"

	items, err := h.store.List(c.Request.Context(), includeCompleted)
	if err != nil {
		h.logError(c, "Failed to list submissions", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submissions"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// UpdateSubmissionStatus handles POST /api/submissions/:id/status
func (h *SubmissionController) UpdateSubmissionStatus(c *gin.Context) {
	var uri submissionURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission id"})
		return
	}

	var req models.StatusUpdate
	if err := readJSON(c, &req); err != nil {
		badBody(c, err)
		return
	}

	changed, err := h.store.UpdateStatus(c.Request.Context(), uri.ID, req)
	if err == nil && changed == 0 {
		err = services.ErrNotFound
	}

	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
	default:
		h.logError(c, "Failed to update submission status", err, zap.Int64("id", uri.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
	}
}

// readJSON decodes the request body into dst. An empty body reads as {}.
func readJSON(c *gin.Context, dst interface{}) error {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	body, err := c.GetRawData()
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}
	return json.Unmarshal(body, dst)
}

func badBody(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
}

func (h *SubmissionController) logError(c *gin.Context, msg string, err error, fields ...zap.Field) {
	fields = append(fields,
		zap.String("request_id", c.GetString(middleware.RequestIDKey)),
		zap.Error(err),
	)
	var storageErr *services.StorageError
	if errors.As(err, &storageErr) {
		fields = append(fields, zap.String("op", storageErr.Op))
	}
	h.log.Error(msg, fields...)
}
