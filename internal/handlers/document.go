package handlers

import (
	"SmartDocs/internal/config"
	"SmartDocs/internal/middleware"
	"SmartDocs/internal/model"
	"SmartDocs/internal/service"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// DocumentHandler serves upload, listing, download, delete and grant.
type DocumentHandler struct {
	DocumentService *service.DocumentService
	UserService     *service.UserService
	Logger          *zap.SugaredLogger
	Config          *config.Config
}

func NewDocumentHandler(
	documentService *service.DocumentService,
	userService *service.UserService,
	logger *zap.SugaredLogger,
	cfg *config.Config,
) *DocumentHandler {
	return &DocumentHandler{
		DocumentService: documentService,
		UserService:     userService,
		Logger:          logger,
		Config:          cfg,
	}
}

// currentUser resolves the token identity into a full user (with the
// current role). Writes 401 and returns nil when the request is anonymous
// or the account is gone.
func (h *DocumentHandler) currentUser(w http.ResponseWriter, r *http.Request) *model.User {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return nil
	}
	user, err := h.UserService.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return nil
		}
		h.Logger.Errorw("resolving current user", "user_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return nil
	}
	return user
}

// writeServiceError maps service sentinels to HTTP statuses. ErrBlobMissing
// is a 404 for the caller but is already logged apart by the service.
func (h *DocumentHandler) writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrForbidden):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrBlobMissing):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrUnknownRole), errors.Is(err, service.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.Logger.Errorw(op+": service error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func docID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// DocumentDTO is the list/upload representation of a document.
type DocumentDTO struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	FileName    string `json:"filename"`
	Department  string `json:"department"`
	AccessMode  string `json:"access_mode"`
	UploadedBy  int64  `json:"uploaded_by"`
	UploadedAt  string `json:"uploaded_at"`
	DownloadURL string `json:"download_url"`
}

func documentDTO(d *model.Document) DocumentDTO {
	return DocumentDTO{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		FileName:    d.FileName,
		Department:  d.Department,
		AccessMode:  string(d.AccessMode),
		UploadedBy:  d.UserID,
		UploadedAt:  d.UploadedAt.UTC().Format(time.RFC3339),
		DownloadURL: fmt.Sprintf("/api/documents/%d", d.ID),
	}
}

// Upload accepts multipart/form-data: the file plus optional title,
// description, department and repeated access_roles fields.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(w, r)
	if user == nil {
		return
	}

	maxBody := int64(h.Config.UploadMaxSizeMB)*1024*1024 + 1*1024*1024
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		h.Logger.Warnw("Upload: invalid multipart form", "error", err)
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.Logger.Warnw("Upload: missing file", "error", err)
		http.Error(w, "no file provided", http.StatusBadRequest)
		return
	}
	defer file.Close()

	req := service.UploadRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Department:  r.FormValue("department"),
		FileName:    header.Filename,
		AccessRoles: r.MultipartForm.Value["access_roles"],
		Content:     file,
	}

	doc, err := h.DocumentService.Upload(r.Context(), user, req)
	if err != nil {
		h.writeServiceError(w, "Upload", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(documentDTO(doc))
}

// List returns the documents visible to the requester.
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(w, r)
	if user == nil {
		return
	}

	docs, err := h.DocumentService.List(r.Context(), user)
	if err != nil {
		h.writeServiceError(w, "List", err)
		return
	}

	out := make([]DocumentDTO, 0, len(docs))
	for i := range docs {
		out = append(out, documentDTO(&docs[i]))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(out)
}

// Download streams the document content with its original file name.
func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(w, r)
	if user == nil {
		return
	}
	id, err := docID(r)
	if err != nil {
		http.Error(w, "invalid document id", http.StatusBadRequest)
		return
	}

	doc, rc, err := h.DocumentService.Download(r.Context(), user, id)
	if err != nil {
		h.writeServiceError(w, "Download", err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition",
		mime.FormatMediaType("attachment", map[string]string{"filename": doc.FileName}))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		h.Logger.Warnw("Download: streaming interrupted", "document_id", id, "error", err)
	}
}

// Delete removes a document (senior role or owner).
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(w, r)
	if user == nil {
		return
	}
	id, err := docID(r)
	if err != nil {
		http.Error(w, "invalid document id", http.StatusBadRequest)
		return
	}

	if err := h.DocumentService.Delete(r.Context(), user, id); err != nil {
		h.writeServiceError(w, "Delete", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": "document deleted"})
}

// GrantRequestDTO targets a user id or a role name, never both.
type GrantRequestDTO struct {
	UserID      *int64  `json:"user_id,omitempty"`
	Role        *string `json:"role,omitempty"`
	AccessLevel string  `json:"access_level,omitempty"`
}

type GrantDTO struct {
	ID         int64   `json:"id"`
	DocumentID int64   `json:"document_id"`
	UserID     *int64  `json:"user_id,omitempty"`
	Role       *string `json:"role,omitempty"`
	Level      string  `json:"access_level"`
}

// Grant appends an access grant to a document.
func (h *DocumentHandler) Grant(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(w, r)
	if user == nil {
		return
	}
	id, err := docID(r)
	if err != nil {
		http.Error(w, "invalid document id", http.StatusBadRequest)
		return
	}

	var req GrantRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Grant: invalid request body", "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	grant, err := h.DocumentService.Grant(r.Context(), user, service.GrantRequest{
		DocumentID: id,
		UserID:     req.UserID,
		Role:       req.Role,
		Level:      req.AccessLevel,
	})
	if err != nil {
		h.writeServiceError(w, "Grant", err)
		return
	}

	out := GrantDTO{
		ID:         grant.ID,
		DocumentID: grant.DocumentID,
		UserID:     grant.UserID,
		Level:      string(grant.Level),
	}
	if grant.Role != nil {
		s := string(*grant.Role)
		out.Role = &s
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(out)
}
