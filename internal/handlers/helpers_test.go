package handlers_test

import (
	"SmartDocs/internal/blob"
	"SmartDocs/internal/config"
	"SmartDocs/internal/handlers"
	"SmartDocs/internal/middleware"
	"SmartDocs/internal/model"
	"SmartDocs/internal/repo"
	"SmartDocs/internal/role"
	"SmartDocs/internal/service"
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// testBlobStore keeps blobs in memory so router tests need no tempdir.
type testBlobStore struct {
	blobs map[string][]byte
	next  int
}

func newTestBlobStore() *testBlobStore { return &testBlobStore{blobs: map[string][]byte{}} }

func (s *testBlobStore) Save(name string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.next++
	path := fmt.Sprintf("%d_%s", s.next, name)
	s.blobs[path] = data
	return path, nil
}

func (s *testBlobStore) Open(path string) (io.ReadCloser, error) {
	data, ok := s.blobs[path]
	if !ok {
		return nil, fmt.Errorf("no blob %s", path)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *testBlobStore) Exists(path string) bool {
	_, ok := s.blobs[path]
	return ok
}

func (s *testBlobStore) Delete(path string) error {
	delete(s.blobs, path)
	return nil
}

var _ blob.Store = (*testBlobStore)(nil)

type routerEnv struct {
	router http.Handler
	cfg    *config.Config
	users  *service.UserService
	blobs  *testBlobStore
}

// newTestRouter builds the full router over an in-memory database.
func newTestRouter(t *testing.T) *routerEnv {
	t.Helper()

	dsn := "file:h_" + t.Name() + "?mode=memory&cache=shared"
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Document{}, &model.AccessGrant{}); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}

	cfg := &config.Config{AuthSecret: "test-secret", UploadMaxSizeMB: 5}
	logger := zap.NewNop().Sugar()

	ur := repo.NewUserRepository(db)
	dr := repo.NewDocumentRepository(db)
	gr := repo.NewGrantRepository(db)
	blobs := newTestBlobStore()

	userSvc := service.NewUserService(ur)
	docSvc := service.NewDocumentService(dr, gr, ur, blobs, logger)
	h := handlers.NewHandler(userSvc, docSvc, logger, cfg)

	return &routerEnv{router: h.Router, cfg: cfg, users: userSvc, blobs: blobs}
}

// mkUser registers an account through the service layer and returns it.
func (e *routerEnv) mkUser(t *testing.T, username string, rl role.Role) *model.User {
	t.Helper()
	u, err := e.users.Register(context.Background(), username, username, username+"@example.com", "pass-"+username, string(rl))
	if err != nil {
		t.Fatalf("registering %s: %v", username, err)
	}
	return u
}

func addAuth(t *testing.T, req *http.Request, userID int64, secret string) {
	t.Helper()
	rr := httptest.NewRecorder()
	_ = middleware.SetLoginCookie(rr, userID, secret)
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
}

// multipartUpload builds a multipart body with a file and form fields.
// accessRoles becomes repeated access_roles fields.
func multipartUpload(t *testing.T, filename, content string, fields map[string]string, accessRoles []string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("creating form file: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	for _, r := range accessRoles {
		_ = mw.WriteField("access_roles", r)
	}
	_ = mw.Close()
	return &buf, mw.FormDataContentType()
}
