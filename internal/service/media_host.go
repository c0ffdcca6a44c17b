package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// ErrMediaUpload 表示媒体托管服务拒绝或无法完成上传。
var ErrMediaUpload = errors.New("media host upload failed")

// MediaAsset describes a file hosted on the external media service.
type MediaAsset struct {
	ID          string
	URL         string
	Bytes       int64
	ContentType string
}

// MediaHost abstracts the external image host. Binaries never touch the
// local database; only the returned asset metadata is persisted.
type MediaHost interface {
	Upload(ctx context.Context, filename string, content []byte) (*MediaAsset, error)
	Delete(ctx context.Context, assetID string) error
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// MediaClient talks to a Publitio-style REST media host.
type MediaClient struct {
	http    httpDoer
	baseURL string
	token   string
	folder  string
}

// NewMediaClient creates a MediaClient for the given API base and token.
func NewMediaClient(baseURL, token, folder string) *MediaClient {
	return &MediaClient{
		http:    &http.Client{Timeout: 30 * time.Second},
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		token:   strings.TrimSpace(token),
		folder:  strings.TrimSpace(folder),
	}
}

// SetHTTPClient 允许在测试中替换底层 HTTP 客户端。
func (c *MediaClient) SetHTTPClient(client httpDoer) {
	if client == nil {
		c.http = &http.Client{Timeout: 30 * time.Second}
		return
	}
	c.http = client
}

type mediaCreateResponse struct {
	Success    bool   `json:"success"`
	ID         string `json:"id"`
	URLPreview string `json:"url_preview"`
	Size       int64  `json:"size"`
	Type       string `json:"type"`
	Error      struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload pushes file content to the media host and returns the hosted asset.
func (c *MediaClient) Upload(ctx context.Context, filename string, content []byte) (*MediaAsset, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(content); err != nil {
		return nil, err
	}
	if c.folder != "" {
		if err := writer.WriteField("folder", c.folder); err != nil {
			return nil, err
		}
	}
	if err := writer.WriteField("title", filename); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/files/create", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMediaUpload, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMediaUpload, err)
	}

	var parsed mediaCreateResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return nil, fmt.Errorf("%w: invalid response", ErrMediaUpload)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(parsed.Error.Message)
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: %s", ErrMediaUpload, msg)
	}

	if parsed.ID == "" || parsed.URLPreview == "" {
		return nil, fmt.Errorf("%w: response missing id or preview url", ErrMediaUpload)
	}

	return &MediaAsset{
		ID:          parsed.ID,
		URL:         parsed.URLPreview,
		Bytes:       parsed.Size,
		ContentType: parsed.Type,
	}, nil
}

// Delete removes a hosted asset by id.
func (c *MediaClient) Delete(ctx context.Context, assetID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/files/delete/"+assetID, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("media host delete %s: status %d", assetID, resp.StatusCode)
	}
	return nil
}

// ImageDimensions 解析常见格式（jpeg/png/gif/webp）的宽高，失败时返回零值。
func ImageDimensions(content []byte) (int, int) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(content))
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}
