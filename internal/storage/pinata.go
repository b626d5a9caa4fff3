package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"

	"go.uber.org/zap"

	"github.com/remixrite/remix-ledger/internal/adapter"
	"github.com/remixrite/remix-ledger/internal/logger"
)

// PinataConfig holds the Pinata pinning API settings
type PinataConfig struct {
	APIURL    string
	APIKey    string
	APISecret string
	Gateway   string
}

type pinataMetadata struct {
	Name      string            `json:"name"`
	KeyValues map[string]string `json:"keyvalues,omitempty"`
}

type pinFileResponse struct {
	IpfsHash  string `json:"IpfsHash"`
	PinSize   int64  `json:"PinSize"`
	Timestamp string `json:"Timestamp"`
}

type pinataUploader struct {
	cfg  PinataConfig
	http adapter.HTTPClient
}

// NewPinataUploader creates an uploader that pins artifacts to IPFS through Pinata
func NewPinataUploader(cfg PinataConfig, httpClient adapter.HTTPClient) (Uploader, error) {
	if cfg.APIURL == "" {
		return nil, errors.New("pinata api url is required")
	}
	if cfg.Gateway == "" {
		return nil, errors.New("pinata gateway is required")
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	cfg.Gateway = strings.TrimRight(cfg.Gateway, "/")

	return &pinataUploader{cfg: cfg, http: httpClient}, nil
}

// Upload pins the artifact and returns its gateway URL
func (p *pinataUploader) Upload(ctx context.Context, artifact Artifact, opts UploadOptions) (*UploadResult, error) {
	contentType := contentTypeOf(artifact)

	body, formContentType, err := p.buildForm(artifact, contentType, opts)
	if err != nil {
		return nil, err
	}

	headers := map[string]string{
		"pinata_api_key":        p.cfg.APIKey,
		"pinata_secret_api_key": p.cfg.APISecret,
	}

	respBody, err := p.http.Post(ctx, p.cfg.APIURL+"/pinning/pinFileToIPFS", headers, formContentType, body)
	if err != nil {
		return nil, fmt.Errorf("failed to pin file: %w", err)
	}

	var resp pinFileResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode pin response: %w", err)
	}
	if resp.IpfsHash == "" {
		return nil, errors.New("pin response did not include an ipfs hash")
	}

	logger.InfoCtx(ctx, "Pinned artifact",
		zap.String("name", artifact.Name),
		zap.String("cid", resp.IpfsHash),
		zap.Int64("size", resp.PinSize))

	return &UploadResult{
		URL:         p.GatewayURL(resp.IpfsHash),
		ContentHash: resp.IpfsHash,
		Size:        resp.PinSize,
		ContentType: contentType,
	}, nil
}

// GatewayURL returns the public URL of a pinned CID
func (p *pinataUploader) GatewayURL(cid string) string {
	return fmt.Sprintf("%s/ipfs/%s", p.cfg.Gateway, cid)
}

func (p *pinataUploader) buildForm(artifact Artifact, contentType string, opts UploadOptions) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, artifact.Name))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := part.Write(artifact.Data); err != nil {
		return nil, "", fmt.Errorf("failed to write file part: %w", err)
	}

	metadata, err := json.Marshal(pinataMetadata{Name: artifact.Name, KeyValues: opts.KeyValues})
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal pinata metadata: %w", err)
	}
	if err := w.WriteField("pinataMetadata", string(metadata)); err != nil {
		return nil, "", fmt.Errorf("failed to write metadata field: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}

	return buf.Bytes(), w.FormDataContentType(), nil
}
