package dto

import (
	"fmt"
	"strings"

	apierrors "github.com/remixrite/remix-ledger/internal/api/shared/errors"
	"github.com/remixrite/remix-ledger/internal/domain"
	"github.com/remixrite/remix-ledger/internal/remix"
)

// CreateRemixRequest represents the request body for creating a remix
type CreateRemixRequest struct {
	ClipIDs     []string `json:"clipIds"`
	CreatorID   string   `json:"creatorId"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Style       string   `json:"style,omitempty"`
	Mood        string   `json:"mood,omitempty"`
	RemixData   string   `json:"remixData,omitempty"`
}

// Validate validates the request body.
// Emptiness checks live in the service so every caller gets them.
func (r *CreateRemixRequest) Validate() error {
	// Validate: maximum number of distinct clips allowed
	r.ClipIDs = domain.DedupeIDs(r.ClipIDs)
	if len(r.ClipIDs) > domain.MAX_CLIPS_PER_REMIX {
		return apierrors.NewValidationError(fmt.Sprintf("maximum %d clips allowed per remix", domain.MAX_CLIPS_PER_REMIX))
	}

	return nil
}

// ToInput converts the request to a service input
func (r *CreateRemixRequest) ToInput() remix.CreateRemixInput {
	return remix.CreateRemixInput{
		ClipIDs:     r.ClipIDs,
		CreatorID:   r.CreatorID,
		Title:       r.Title,
		Description: r.Description,
		Style:       r.Style,
		Mood:        r.Mood,
		RemixData:   r.RemixData,
	}
}

// UploadClipForm represents the multipart form fields of a clip upload
type UploadClipForm struct {
	Title        string `form:"title"`
	Description  string `form:"description"`
	Artist       string `form:"artist"`
	Duration     string `form:"duration"`
	OwnerAddress string `form:"ownerAddress"`
}

// Validate validates the form fields
func (f *UploadClipForm) Validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return apierrors.NewValidationError("title is required")
	}
	if strings.TrimSpace(f.OwnerAddress) == "" {
		return apierrors.NewValidationError("ownerAddress is required")
	}
	return nil
}

// ToInput converts the form and the file contents to a service input
func (f *UploadClipForm) ToInput(fileName string, data []byte) remix.UploadClipInput {
	return remix.UploadClipInput{
		FileName:     fileName,
		Data:         data,
		Title:        f.Title,
		Description:  f.Description,
		Artist:       f.Artist,
		Duration:     f.Duration,
		OwnerAddress: f.OwnerAddress,
	}
}
