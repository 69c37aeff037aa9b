package repo

import (
	"SmartDocs/internal/model"
	"context"

	"gorm.io/gorm"
)

// GrantRepository is the Access Grant Ledger contract. Grants are append-only:
// there is no update and no per-grant delete, rows disappear only with their
// document.
type GrantRepository interface {
	Create(ctx context.Context, grant *model.AccessGrant) error

	// ListForDocument returns every grant of a document, ascending by id.
	// Duplicates are possible and returned as stored.
	ListForDocument(ctx context.Context, documentID int64) ([]model.AccessGrant, error)

	CountForDocument(ctx context.Context, documentID int64) (int64, error)
}

type grantRepo struct {
	db *gorm.DB
}

// NewGrantRepository creates the gorm-backed grant repository.
func NewGrantRepository(db *gorm.DB) GrantRepository {
	return &grantRepo{db: db}
}

func (r *grantRepo) Create(ctx context.Context, grant *model.AccessGrant) error {
	return r.db.WithContext(ctx).Create(grant).Error
}

func (r *grantRepo) ListForDocument(ctx context.Context, documentID int64) ([]model.AccessGrant, error) {
	var grants []model.AccessGrant
	err := r.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Order("id asc").
		Find(&grants).Error
	if err != nil {
		return nil, err
	}
	return grants, nil
}

func (r *grantRepo) CountForDocument(ctx context.Context, documentID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.AccessGrant{}).
		Where("document_id = ?", documentID).
		Count(&n).Error
	return n, err
}
