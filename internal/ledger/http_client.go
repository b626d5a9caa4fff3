package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/remixrite/remix-ledger/internal/adapter"
	"github.com/remixrite/remix-ledger/internal/domain"
)

// HTTPClientConfig holds the ledger gateway settings
type HTTPClientConfig struct {
	BaseURL string
	APIKey  string
	ChainID string
}

type httpClient struct {
	cfg  HTTPClientConfig
	http adapter.HTTPClient
}

// NewHTTPClient creates a ledger client for a Story-Protocol-style REST gateway
func NewHTTPClient(cfg HTTPClientConfig, http adapter.HTTPClient) Client {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &httpClient{cfg: cfg, http: http}
}

func (c *httpClient) headers() map[string]string {
	h := map[string]string{}
	if c.cfg.APIKey != "" {
		h["Authorization"] = "Bearer " + c.cfg.APIKey
	}
	if c.cfg.ChainID != "" {
		h["X-Chain-Id"] = c.cfg.ChainID
	}
	return h
}

func (c *httpClient) UploadMetadata(ctx context.Context, metadata Metadata) (string, error) {
	var resp struct {
		MetadataURI string `json:"metadataURI"`
	}
	if err := c.http.PostJSON(ctx, c.cfg.BaseURL+"/story/upload-metadata", c.headers(), metadata, &resp); err != nil {
		return "", fmt.Errorf("failed to upload metadata: %w", err)
	}
	if resp.MetadataURI == "" {
		return "", errors.New("ledger returned an empty metadata uri")
	}
	return resp.MetadataURI, nil
}

func (c *httpClient) RegisterAsset(ctx context.Context, req AssetRequest) (*Asset, error) {
	var asset Asset
	if err := c.http.PostJSON(ctx, c.cfg.BaseURL+"/story/register-ip", c.headers(), req, &asset); err != nil {
		return nil, fmt.Errorf("failed to register asset: %w", err)
	}
	if asset.AssetID == "" {
		return nil, errors.New("ledger returned an empty asset id")
	}
	return &asset, nil
}

func (c *httpClient) AttachLicense(ctx context.Context, assetID string, terms domain.LicenseTerms) (string, error) {
	body := struct {
		AssetID      string              `json:"ipId"`
		LicenseTerms domain.LicenseTerms `json:"licenseTerms"`
	}{AssetID: assetID, LicenseTerms: terms}

	var resp struct {
		LicenseTermsID string `json:"licenseTermsId"`
	}
	if err := c.http.PostJSON(ctx, c.cfg.BaseURL+"/story/attach-license", c.headers(), body, &resp); err != nil {
		return "", fmt.Errorf("failed to attach license terms: %w", err)
	}
	if resp.LicenseTermsID == "" {
		return "", errors.New("ledger returned an empty license terms id")
	}
	return resp.LicenseTermsID, nil
}

func (c *httpClient) LinkDerivative(ctx context.Context, req LinkRequest) (string, error) {
	headers := c.headers()
	if req.IdempotencyKey != "" {
		headers["Idempotency-Key"] = req.IdempotencyKey
	}

	body := struct {
		LinkRequest
		LicenseTermsIDs []string `json:"licenseTermsIds"`
		RoyaltyContext  string   `json:"royaltyContext"`
	}{LinkRequest: req, LicenseTermsIDs: []string{}, RoyaltyContext: "0x"}

	var resp struct {
		TxHash string `json:"txHash"`
	}
	if err := c.http.PostJSON(ctx, c.cfg.BaseURL+"/story/register-derivative", headers, body, &resp); err != nil {
		return "", fmt.Errorf("failed to register derivative: %w", err)
	}
	if resp.TxHash == "" {
		return "", errors.New("ledger returned an empty transaction hash")
	}
	return resp.TxHash, nil
}
