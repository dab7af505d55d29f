package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hsadv/quotes-service/internal/model"
)

type QuoteRepository struct {
	db *gorm.DB
}

func NewQuoteRepository(db *gorm.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

const quoteColumns = `
	id,
	name,
	email,
	phone,
	company,
	service_type,
	service_level,
	service_specification,
	urgency,
	project_description,
	consent_marketing,
	status,
	created_at,
	updated_at
`

// Create persists a new submission. The database assigns id and created_at;
// status defaults to 'new' unless set on the quote.
func (r *QuoteRepository) Create(ctx context.Context, quote model.Quote) (*model.Quote, error) {
	var saved model.Quote
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO contact_submissions (
			name,
			email,
			phone,
			company,
			service_type,
			service_level,
			service_specification,
			urgency,
			project_description,
			consent_marketing,
			status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+quoteColumns,
		quote.Name,
		quote.Email,
		quote.Phone,
		quote.Company,
		quote.ServiceType,
		quote.ServiceLevel,
		quote.ServiceSpecification,
		quote.Urgency,
		quote.ProjectDescription,
		quote.ConsentMarketing,
		quote.Status,
	).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *QuoteRepository) Get(ctx context.Context, id uuid.UUID) (*model.Quote, error) {
	var quote model.Quote
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+quoteColumns+`
		FROM contact_submissions
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&quote).Error
	if err != nil {
		return nil, err
	}
	if quote.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &quote, nil
}

func (r *QuoteRepository) ListRecent(ctx context.Context, limit int) ([]model.Quote, error) {
	var quotes []model.Quote
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+quoteColumns+`
		FROM contact_submissions
		ORDER BY created_at DESC
		LIMIT ?
	`, limit).Scan(&quotes).Error
	if err != nil {
		return nil, err
	}
	return quotes, nil
}

func (r *QuoteRepository) ListSince(ctx context.Context, from time.Time) ([]model.Quote, error) {
	var quotes []model.Quote
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+quoteColumns+`
		FROM contact_submissions
		WHERE created_at >= ?
		ORDER BY created_at ASC
	`, from).Scan(&quotes).Error
	if err != nil {
		return nil, err
	}
	return quotes, nil
}

func (r *QuoteRepository) ListAll(ctx context.Context) ([]model.Quote, error) {
	var quotes []model.Quote
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+quoteColumns+`
		FROM contact_submissions
		ORDER BY created_at DESC
	`).Scan(&quotes).Error
	if err != nil {
		return nil, err
	}
	return quotes, nil
}

// Delete removes a submission permanently. Deleting an unknown id is an
// error, not a no-op.
func (r *QuoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`
		DELETE FROM contact_submissions WHERE id = ?
	`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
