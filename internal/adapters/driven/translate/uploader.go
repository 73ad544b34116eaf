package translate

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/custodia-labs/helpsync-cli/internal/core/domain"
	"github.com/custodia-labs/helpsync-cli/internal/core/ports/driven"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

const defaultBaseURL = "https://webtranslateit.com/api"

// Uploader implements the translation uploader port against the
// WebTranslateIt file API. Files are addressed by their root-relative
// path, which doubles as the remote file name.
type Uploader struct {
	http    *http.Client
	baseURL string
	apiKey  string
	root    string
}

var _ driven.TranslationUploader = (*Uploader)(nil)

// NewUploader creates an uploader reading source files under root.
func NewUploader(apiKey, root string) *Uploader {
	return &Uploader{
		http:    &http.Client{Timeout: DefaultTimeout},
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		root:    root,
	}
}

// NewUploaderWithBaseURL creates an uploader against an explicit
// endpoint. Used by tests to point at a local server.
func NewUploaderWithBaseURL(baseURL, apiKey, root string) *Uploader {
	u := NewUploader(apiKey, root)
	u.baseURL = baseURL
	return u
}

// Register uploads a source file and returns the id the service
// assigned to it.
func (u *Uploader) Register(ctx context.Context, relPath string) (string, error) {
	url := fmt.Sprintf("%s/projects/%s/files", u.baseURL, u.apiKey)
	body, err := u.post(ctx, http.MethodPost, url, relPath)
	if err != nil {
		return "", err
	}
	id := strings.Trim(strings.TrimSpace(body), `"`)
	if id == "" {
		return "", fmt.Errorf("%w: register %s: empty file id in response", domain.ErrRemoteOperation, relPath)
	}
	return id, nil
}

// Update re-uploads the source content for an existing file id.
func (u *Uploader) Update(ctx context.Context, fileID, relPath string) error {
	locale := domain.ToRemoteLocale(domain.DefaultLocale)
	url := fmt.Sprintf("%s/projects/%s/files/%s/locales/%s", u.baseURL, u.apiKey, fileID, locale)
	_, err := u.post(ctx, http.MethodPut, url, relPath)
	return err
}

// Delete removes a registered file.
func (u *Uploader) Delete(ctx context.Context, fileID string) error {
	url := fmt.Sprintf("%s/projects/%s/files/%s", u.baseURL, u.apiKey, fileID)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return u.send(req, fileID)
}

// post uploads the file at relPath as a multipart request. The file
// field carries the content, the name field the root-relative path.
func (u *Uploader) post(ctx context.Context, method, url, relPath string) (string, error) {
	content, err := os.ReadFile(filepath.Join(u.root, filepath.FromSlash(relPath)))
	if err != nil {
		return "", fmt.Errorf("read source %s: %w", relPath, err)
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	if err := form.WriteField("name", relPath); err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}
	part, err := form.CreateFormFile("file", relPath)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := u.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %s %s: %v", domain.ErrRemoteOperation, method, relPath, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: %s %s: status %d: %s",
			domain.ErrRemoteOperation, method, relPath, resp.StatusCode, bytes.TrimSpace(body))
	}
	return string(body), nil
}

// send performs a bodyless request, checking only the status.
func (u *Uploader) send(req *http.Request, what string) error {
	resp, err := u.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", domain.ErrRemoteOperation, req.Method, what, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s %s: %w", req.Method, what, domain.ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s %s: status %d: %s",
			domain.ErrRemoteOperation, req.Method, what, resp.StatusCode, bytes.TrimSpace(snippet))
	}
	return nil
}
