package repo

import (
	"SmartDocs/internal/model"
	"SmartDocs/internal/role"
	"context"

	"gorm.io/gorm"
)

// DocumentRepository is the Document Store contract consumed by the service
// layer. All methods are single-record (or single-query) operations; the
// store's own consistency per call is the only guarantee relied upon.
type DocumentRepository interface {
	Create(ctx context.Context, doc *model.Document) error

	// GetByID returns gorm.ErrRecordNotFound when the document does not exist.
	GetByID(ctx context.Context, id int64) (*model.Document, error)

	// ListAll returns every document, ascending by id.
	ListAll(ctx context.Context) ([]model.Document, error)

	// ListVisible returns documents a non-senior requester may see: documents
	// in all-employees mode, the requester's own documents, plus documents
	// with a grant matching the requester's id or current role. Ascending
	// by id.
	ListVisible(ctx context.Context, userID int64, r role.Role) ([]model.Document, error)

	// Delete removes the document row and all of its grants in one
	// transaction. Deleting a missing id is a no-op.
	Delete(ctx context.Context, id int64) error
}

type documentRepo struct {
	db *gorm.DB
}

// NewDocumentRepository creates the gorm-backed document repository.
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, doc *model.Document) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *documentRepo) GetByID(ctx context.Context, id int64) (*model.Document, error) {
	var doc model.Document
	if err := r.db.WithContext(ctx).First(&doc, id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepo) ListAll(ctx context.Context) ([]model.Document, error) {
	var docs []model.Document
	if err := r.db.WithContext(ctx).Order("id asc").Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *documentRepo) ListVisible(ctx context.Context, userID int64, rl role.Role) ([]model.Document, error) {
	var docs []model.Document
	sub := r.db.Model(&model.AccessGrant{}).
		Select("document_id").
		Where("user_id = ? OR role = ?", userID, rl)
	// the owner clause mirrors canRead: owners keep seeing their own
	// restricted documents even after a role change
	err := r.db.WithContext(ctx).
		Where("access_mode = ? OR user_id = ? OR id IN (?)", model.AccessAllEmployees, userID, sub).
		Order("id asc").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *documentRepo) Delete(ctx context.Context, id int64) error {
	// Grants go first: sqlite does not enforce the cascade constraint by
	// default, so the cascade is explicit.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_id = ?", id).Delete(&model.AccessGrant{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Document{}, id).Error
	})
}
