package google

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"regexp"
	"strings"
)

const folderMIME = "application/vnd.google-apps.folder"

// FileRef identifies a stored file.
type FileRef struct {
	ID  string
	URL string
}

// DriveClient talks to the document-storage backend.
type DriveClient struct {
	http      *http.Client
	baseURL   string
	uploadURL string
}

var driveNameUnsafe = regexp.MustCompile(`[/\\:*?"<>|]`)

// SanitizeName makes a name safe for storage queries and file names.
func SanitizeName(name string) string {
	name = strings.TrimSpace(driveNameUnsafe.ReplaceAllString(name, "-"))
	if len(name) > 200 {
		name = name[:200]
	}
	return name
}

type fileList struct {
	Files []struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		WebViewLink string `json:"webViewLink"`
	} `json:"files"`
}

func (c *DriveClient) list(ctx context.Context, s Session, query, fields string) (*fileList, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("fields", fields)
	q.Set("spaces", "drive")

	var resp fileList
	u := c.baseURL + "/drive/v3/files?" + q.Encode()
	if err := doJSON(ctx, c.http, s, http.MethodGet, u, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FindFolder looks up a folder by exact name, optionally within a parent.
func (c *DriveClient) FindFolder(ctx context.Context, s Session, name, parentID string) (string, bool, error) {
	query := fmt.Sprintf("name='%s' and mimeType='%s' and trashed=false", escapeQueryValue(SanitizeName(name)), folderMIME)
	if parentID != "" {
		query += fmt.Sprintf(" and '%s' in parents", parentID)
	}
	resp, err := c.list(ctx, s, query, "files(id, name)")
	if err != nil {
		return "", false, err
	}
	if len(resp.Files) == 0 {
		return "", false, nil
	}
	return resp.Files[0].ID, true, nil
}

// CreateFolder creates a folder, optionally within a parent.
func (c *DriveClient) CreateFolder(ctx context.Context, s Session, name, parentID string) (string, error) {
	body := map[string]any{
		"name":     SanitizeName(name),
		"mimeType": folderMIME,
	}
	if parentID != "" {
		body["parents"] = []string{parentID}
	}
	var resp struct {
		ID string `json:"id"`
	}
	u := c.baseURL + "/drive/v3/files?fields=id"
	if err := doJSON(ctx, c.http, s, http.MethodPost, u, body, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// FindFile looks up a file by exact name within a folder.
func (c *DriveClient) FindFile(ctx context.Context, s Session, name, folderID string) (FileRef, bool, error) {
	query := fmt.Sprintf("name='%s' and '%s' in parents and trashed=false", escapeQueryValue(SanitizeName(name)), folderID)
	resp, err := c.list(ctx, s, query, "files(id, name, webViewLink)")
	if err != nil {
		return FileRef{}, false, err
	}
	if len(resp.Files) == 0 {
		return FileRef{}, false, nil
	}
	f := resp.Files[0]
	return FileRef{ID: f.ID, URL: fileURL(f.ID, f.WebViewLink)}, true, nil
}

// CreateFile creates a plain-text file with content in one multipart
// upload.
func (c *DriveClient) CreateFile(ctx context.Context, s Session, name, folderID, content string) (FileRef, error) {
	meta := map[string]any{
		"name":    SanitizeName(name),
		"parents": []string{folderID},
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := writeMultipart(w, meta, content); err != nil {
		return FileRef{}, err
	}

	u := c.uploadURL + "/upload/drive/v3/files?uploadType=multipart&fields=id,webViewLink"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, &buf)
	if err != nil {
		return FileRef{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.AccessToken)
	req.Header.Set("Content-Type", "multipart/related; boundary="+w.Boundary())

	var resp struct {
		ID          string `json:"id"`
		WebViewLink string `json:"webViewLink"`
	}
	if err := do(c.http, req, &resp); err != nil {
		return FileRef{}, err
	}
	return FileRef{ID: resp.ID, URL: fileURL(resp.ID, resp.WebViewLink)}, nil
}

// UpdateFile replaces the content of an existing file in place.
func (c *DriveClient) UpdateFile(ctx context.Context, s Session, fileID, content string) error {
	u := fmt.Sprintf("%s/upload/drive/v3/files/%s?uploadType=media", c.uploadURL, fileID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, u, strings.NewReader(content))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.AccessToken)
	req.Header.Set("Content-Type", "text/plain")
	return do(c.http, req, nil)
}

// FolderURL returns the browsable link for a folder.
func FolderURL(folderID string) string {
	return "https://drive.google.com/drive/folders/" + folderID
}

func fileURL(id, webViewLink string) string {
	if webViewLink != "" {
		return webViewLink
	}
	return fmt.Sprintf("https://drive.google.com/file/d/%s/view", id)
}

// escapeQueryValue escapes single quotes inside a files.list query value.
func escapeQueryValue(v string) string {
	return strings.ReplaceAll(v, "'", `\'`)
}

func writeMultipart(w *multipart.Writer, meta map[string]any, content string) error {
	metaHeader := textproto.MIMEHeader{}
	metaHeader.Set("Content-Type", "application/json; charset=UTF-8")
	metaPart, err := w.CreatePart(metaHeader)
	if err != nil {
		return err
	}
	if err := writeJSON(metaPart, meta); err != nil {
		return err
	}

	mediaHeader := textproto.MIMEHeader{}
	mediaHeader.Set("Content-Type", "text/plain")
	mediaPart, err := w.CreatePart(mediaHeader)
	if err != nil {
		return err
	}
	if _, err := mediaPart.Write([]byte(content)); err != nil {
		return err
	}
	return w.Close()
}
