package service

import (
	"SmartDocs/internal/blob"
	"SmartDocs/internal/model"
	"SmartDocs/internal/repo"
	"SmartDocs/internal/role"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AllEmployeesSentinel is the access-role list value that marks a document
// readable by everyone instead of creating role grants.
const AllEmployeesSentinel = "All Employees"

// DocumentService is the access decision engine plus document lifecycle:
// it authorizes every operation first and only then touches the blob store
// or the metadata tables.
type DocumentService struct {
	docs   repo.DocumentRepository
	grants repo.GrantRepository
	users  repo.UserRepository
	blobs  blob.Store
	logger *zap.SugaredLogger
}

func NewDocumentService(
	docs repo.DocumentRepository,
	grants repo.GrantRepository,
	users repo.UserRepository,
	blobs blob.Store,
	logger *zap.SugaredLogger,
) *DocumentService {
	return &DocumentService{docs: docs, grants: grants, users: users, blobs: blobs, logger: logger}
}

// UploadRequest carries everything needed to create a document.
// AccessRoles is a structured list of role names; the single sentinel value
// "All Employees" switches the document to all-employees mode instead.
type UploadRequest struct {
	Title       string
	Description string
	Department  string
	FileName    string
	AccessRoles []string
	Content     io.Reader
}

// Upload creates a document. Senior roles only. The access-role list is
// validated before the blob is written; a metadata failure after a
// successful blob write leaves an orphaned blob behind. There is no
// two-phase commit here, orphans need external cleanup.
func (s *DocumentService) Upload(ctx context.Context, actor *model.User, req UploadRequest) (*model.Document, error) {
	if !actor.Role.IsSenior() {
		return nil, fmt.Errorf("%w: role %q cannot upload documents", ErrForbidden, actor.Role)
	}
	if req.Content == nil || req.FileName == "" {
		return nil, fmt.Errorf("%w: no file provided", ErrInvalidInput)
	}

	mode, grantRoles, err := parseAccessRoles(req.AccessRoles)
	if err != nil {
		return nil, err
	}

	path, err := s.blobs.Save(req.FileName, req.Content)
	if err != nil {
		return nil, fmt.Errorf("storing blob: %w", err)
	}

	doc := &model.Document{
		Title:       req.Title,
		Description: req.Description,
		FileName:    req.FileName,
		BlobPath:    path,
		UserID:      actor.ID,
		Department:  req.Department,
		AccessMode:  mode,
	}
	if doc.Title == "" {
		doc.Title = req.FileName
	}
	if doc.Department == "" {
		doc.Department = "General"
	}

	if err := s.docs.Create(ctx, doc); err != nil {
		s.logger.Errorw("upload: metadata write failed, blob orphaned",
			"blob_path", path, "error", err)
		return nil, fmt.Errorf("creating document: %w", err)
	}

	for _, rl := range grantRoles {
		g := &model.AccessGrant{
			DocumentID: doc.ID,
			Role:       &rl,
			GrantedBy:  &actor.ID,
			Level:      model.LevelView,
		}
		if err := s.grants.Create(ctx, g); err != nil {
			return nil, fmt.Errorf("creating role grant: %w", err)
		}
	}
	return doc, nil
}

// parseAccessRoles validates the structured access-role list. The sentinel
// selects all-employees mode; any other entry must be a known role. An empty
// list also means all-employees: that is the upload form's default, a
// document is restricted only by naming roles.
func parseAccessRoles(raw []string) (model.AccessMode, []role.Role, error) {
	mode := model.AccessRestricted
	var roles []role.Role
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if s == AllEmployeesSentinel {
			mode = model.AccessAllEmployees
			continue
		}
		rl, err := role.Parse(s)
		if err != nil {
			return "", nil, fmt.Errorf("%w: access role %q", ErrUnknownRole, s)
		}
		roles = append(roles, rl)
	}
	if mode == model.AccessAllEmployees || len(roles) == 0 {
		// all-employees already covers everyone, role grants would be noise
		return model.AccessAllEmployees, nil, nil
	}
	return mode, roles, nil
}

// GrantRequest targets exactly one of UserID / Role.
type GrantRequest struct {
	DocumentID int64
	UserID     *int64
	Role       *string
	Level      string
}

// Grant appends one access grant. Senior roles only. Grants are not
// deduplicated: granting the same target twice stores two rows, which is
// harmless for the read decision.
func (s *DocumentService) Grant(ctx context.Context, actor *model.User, req GrantRequest) (*model.AccessGrant, error) {
	if !actor.Role.IsSenior() {
		return nil, fmt.Errorf("%w: role %q cannot grant access", ErrForbidden, actor.Role)
	}
	if (req.UserID == nil) == (req.Role == nil) {
		return nil, fmt.Errorf("%w: exactly one of user_id or role must be set", ErrInvalidInput)
	}

	if _, err := s.docs.GetByID(ctx, req.DocumentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: document %d", ErrNotFound, req.DocumentID)
		}
		return nil, err
	}

	grant := &model.AccessGrant{
		DocumentID: req.DocumentID,
		GrantedBy:  &actor.ID,
		Level:      model.LevelView,
	}
	if req.Level != "" {
		if !model.ValidLevel(req.Level) {
			return nil, fmt.Errorf("%w: access level %q", ErrInvalidInput, req.Level)
		}
		grant.Level = model.AccessLevel(req.Level)
	}

	switch {
	case req.UserID != nil:
		if _, err := s.users.GetUserByID(ctx, *req.UserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: user %d", ErrNotFound, *req.UserID)
			}
			return nil, err
		}
		grant.UserID = req.UserID
	default:
		rl, err := role.Parse(*req.Role)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRole, *req.Role)
		}
		grant.Role = &rl
	}

	if err := s.grants.Create(ctx, grant); err != nil {
		return nil, fmt.Errorf("creating grant: %w", err)
	}
	return grant, nil
}

// List returns the documents visible to the actor: everything for senior
// roles, otherwise all-employees documents plus documents granted to the
// actor's id or current role. Order is ascending id either way.
func (s *DocumentService) List(ctx context.Context, actor *model.User) ([]model.Document, error) {
	if actor.Role.IsSenior() {
		return s.docs.ListAll(ctx)
	}
	return s.docs.ListVisible(ctx, actor.ID, actor.Role)
}

// Download authorizes a read and opens the blob. Authorization is checked
// before the blob store is touched; a valid metadata row whose blob is gone
// yields ErrBlobMissing, not ErrNotFound.
func (s *DocumentService) Download(ctx context.Context, actor *model.User, id int64) (*model.Document, io.ReadCloser, error) {
	doc, err := s.getDocument(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	grants, err := s.grants.ListForDocument(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !canRead(actor, doc, grants) {
		return nil, nil, fmt.Errorf("%w: document %d", ErrForbidden, id)
	}

	if !s.blobs.Exists(doc.BlobPath) {
		s.logger.Warnw("download: metadata present but blob missing",
			"document_id", doc.ID, "blob_path", doc.BlobPath)
		return nil, nil, fmt.Errorf("%w: document %d", ErrBlobMissing, id)
	}
	rc, err := s.blobs.Open(doc.BlobPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening blob: %w", err)
	}
	return doc, rc, nil
}

// Delete removes the document and its grants, then best-effort deletes the
// blob. Blob deletion failure is logged and swallowed: the metadata removal
// is the authoritative outcome.
func (s *DocumentService) Delete(ctx context.Context, actor *model.User, id int64) error {
	doc, err := s.getDocument(ctx, id)
	if err != nil {
		return err
	}
	if !canDelete(actor, doc) {
		return fmt.Errorf("%w: document %d", ErrForbidden, id)
	}

	if err := s.docs.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	if err := s.blobs.Delete(doc.BlobPath); err != nil {
		s.logger.Warnw("delete: blob removal failed, metadata already gone",
			"document_id", id, "blob_path", doc.BlobPath, "error", err)
	}
	return nil
}

func (s *DocumentService) getDocument(ctx context.Context, id int64) (*model.Document, error) {
	doc, err := s.docs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: document %d", ErrNotFound, id)
		}
		return nil, err
	}
	return doc, nil
}
