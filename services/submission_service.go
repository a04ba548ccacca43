package services

import (
	"context"
	"time"

	"dropoff-intake-api/config"
	"dropoff-intake-api/models"

	"gorm.io/gorm"
)

// SubmissionService is the data access layer for the submissions table.
// Every method runs exactly one statement.
type SubmissionService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewSubmissionService(db *gorm.DB) *SubmissionService {
	if db == nil {
		db = config.DB
	}
	return &SubmissionService{db: db, now: time.Now}
}

// Create stores a new submission and returns its id. Flags start false and
// submitted_at is stamped by the server.
func (s *SubmissionService) Create(ctx context.Context, in models.SubmissionInput) (int64, error) {
	if s.db == nil {
		return 0, storageErr("create", errNoDatabase)
	}

	row := in.ToSubmission()
	row.SubmittedAt = s.now().UTC()

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, storageErr("create", err)
	}
	return row.ID, nil
}

// List returns submissions newest first. Completed rows are only included
// when includeCompleted is set.
func (s *SubmissionService) List(ctx context.Context, includeCompleted bool) ([]models.Submission, error) {
	if s.db == nil {
		return nil, storageErr("list", errNoDatabase)
	}

	q := s.db.WithContext(ctx).Model(&models.Submission{})
	if !includeCompleted {
		q = q.Where("is_done = ?", false)
	}

	var items []models.Submission
	if err := q.Order("submitted_at DESC, id DESC").Find(&items).Error; err != nil {
		return nil, storageErr("list", err)
	}
	if items == nil {
		items = []models.Submission{}
	}
	return items, nil
}

// UpdateStatus sets the supplied flags together with their timestamps and
// returns the number of matched rows. Zero is not an error here.
func (s *SubmissionService) UpdateStatus(ctx context.Context, id int64, update models.StatusUpdate) (int64, error) {
	if update.IsEmpty() {
		return 0, ErrNoFieldsToUpdate
	}
	if s.db == nil {
		return 0, storageErr("update status", errNoDatabase)
	}

	query, args := newStatusUpdate(update, s.now().UTC()).build(id)
	result := s.db.WithContext(ctx).Exec(query, args...)
	if result.Error != nil {
		return 0, storageErr("update status", result.Error)
	}
	return result.RowsAffected, nil
}
