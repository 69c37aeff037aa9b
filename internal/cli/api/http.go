package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"SmartDocs/internal/cli/auth"
)

// do sends a request with an optional auth cookie and returns the response
// with its fully read body.
func do(req *http.Request, token string) (*http.Response, []byte, error) {
	if token != "" {
		req.Header.Set("Cookie", "auth_token="+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	return resp, body, nil
}

// PostJSON sends a JSON POST request. If token is non-empty, it is passed as auth cookie.
func PostJSON(ctx context.Context, url string, payload any, token string) (*http.Response, []byte, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return do(req, token)
}

// GetJSON sends a GET request expecting a JSON response body.
func GetJSON(ctx context.Context, url, token string) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, err
	}
	return do(req, token)
}

// Delete sends a DELETE request.
func Delete(ctx context.Context, url, token string) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return nil, nil, err
	}
	return do(req, token)
}

// Download sends a GET request and leaves the body open for streaming.
// The caller closes resp.Body.
func Download(ctx context.Context, url, token string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set("Cookie", "auth_token="+token)
	}
	return http.DefaultClient.Do(req)
}

// PostFile uploads a local file as multipart/form-data. fields holds the
// plain form values; repeated values (access_roles) are supported.
func PostFile(ctx context.Context, url, filePath string, fields map[string][]string, token string) (*http.Response, []byte, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, values := range fields {
		for _, v := range values {
			if v == "" {
				continue
			}
			if err := mw.WriteField(name, v); err != nil {
				return nil, nil, err
			}
		}
	}
	fw, err := mw.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return nil, nil, err
	}
	if _, err := io.Copy(fw, f); err != nil {
		return nil, nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return do(req, token)
}

// PersistAuthFromResponse extracts the auth cookie from a response and saves
// it through the token store.
func PersistAuthFromResponse(resp *http.Response) error {
	for _, c := range resp.Cookies() {
		if c.Name == "auth_token" && c.Value != "" {
			return auth.SaveToken(c.Value)
		}
	}
	return fmt.Errorf("no auth cookie in response")
}
