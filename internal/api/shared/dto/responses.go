package dto

import (
	"time"

	apierrors "github.com/remixrite/remix-ledger/internal/api/shared/errors"
	"github.com/remixrite/remix-ledger/internal/domain"
	"github.com/remixrite/remix-ledger/internal/remix"
)

// RemixResponse represents the response for a single remix
type RemixResponse struct {
	Success bool                 `json:"success"`
	Remix   *remix.EnrichedRemix `json:"remix"`
}

// IncompleteRemixResponse is returned when the remix is registered but some royalties are not recorded yet
type IncompleteRemixResponse struct {
	Success       bool                 `json:"success"`
	Incomplete    bool                 `json:"incomplete"`
	Remix         *remix.EnrichedRemix `json:"remix"`
	PendingOwners []string             `json:"pending_owners"`
	Error         *apierrors.APIError  `json:"error"`
}

// RemixListResponse represents the response for listing remixes
type RemixListResponse struct {
	Success bool                  `json:"success"`
	Remixes []remix.EnrichedRemix `json:"remixes"`
}

// ClipResponse represents the response for a single clip
type ClipResponse struct {
	Success bool         `json:"success"`
	Clip    *domain.Clip `json:"clip"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Timestamp time.Time `json:"timestamp"`
}

// NewIncompleteRemixResponse builds the 207 body for a partially settled remix
func NewIncompleteRemixResponse(enriched *remix.EnrichedRemix, partial *domain.PartialSettlementError, apiErr *apierrors.APIError) IncompleteRemixResponse {
	owners := make([]string, 0, len(partial.Failed))
	for _, s := range partial.Failed {
		owners = append(owners, s.OwnerAddress)
	}
	return IncompleteRemixResponse{
		Success:       false,
		Incomplete:    true,
		Remix:         enriched,
		PendingOwners: owners,
		Error:         apiErr,
	}
}
