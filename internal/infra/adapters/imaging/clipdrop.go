// Package imaging adapts external image-processing providers.
package imaging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"saas-background-remover/internal/domain"
	"saas-background-remover/internal/domain/ports/adapter"
)

var _ adapter.BackgroundRemover = (*ClipDropRemover)(nil)

const defaultEndpoint = "https://clipdrop-api.co/remove-background/v1"

// maxErrorBody bounds how much of a provider error response is read back
// into the error message.
const maxErrorBody = 4 << 10

// ClipDropRemover calls the ClipDrop remove-background API: a multipart POST
// of the raw image bytes authenticated with an x-api-key header, answered
// with the processed image as a binary payload.
type ClipDropRemover struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

func NewClipDropRemover(apiKey, endpoint string, timeout time.Duration) (*ClipDropRemover, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("clipdrop api key missing")
	}
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ClipDropRemover{
		apiKey:   apiKey,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

func (c *ClipDropRemover) Name() string { return "clipdrop" }

func (c *ClipDropRemover) Remove(ctx context.Context, filename string, image []byte) ([]byte, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: empty image", domain.ErrInvalidArgument)
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile("image_file", filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGatewayFailure, err)
	}
	if _, err := fw.Write(image); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGatewayFailure, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGatewayFailure, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGatewayFailure, err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGatewayFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: clipdrop http %d: %s", domain.ErrGatewayFailure, resp.StatusCode, bytes.TrimSpace(msg))
	}

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGatewayFailure, err)
	}
	return out, nil
}
