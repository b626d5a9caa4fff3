package store

import (
	"context"
	"time"

	"github.com/remixrite/remix-ledger/internal/domain"
)

// ContentStore reads and writes clips and remixes
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=ContentStore=MockContentStore,SettlementStore=MockSettlementStore,KeyValueStore=MockKeyValueStore,Store=MockStore
type ContentStore interface {
	// FindClip retrieves a clip by id, returning nil when it does not exist
	FindClip(ctx context.Context, id string) (*domain.Clip, error)
	// CreateClip persists a newly registered clip
	CreateClip(ctx context.Context, input CreateClipInput) (*domain.Clip, error)
	// GetRemix retrieves a remix by id, returning nil when it does not exist
	GetRemix(ctx context.Context, id string) (*domain.Remix, error)
	// ListRemixesByCreator lists a creator's remixes, newest first
	ListRemixesByCreator(ctx context.Context, creatorID string) ([]domain.Remix, error)
	// ListAllRemixes lists all remixes, newest first
	ListAllRemixes(ctx context.Context) ([]domain.Remix, error)
}

// SettlementStore writes remix rows and their royalty distributions
type SettlementStore interface {
	// InsertRemix persists a remix row
	InsertRemix(ctx context.Context, draft domain.RemixDraft) (*domain.Remix, error)
	// InsertDistribution persists a distribution row.
	// Writing the same (remix, clip, owner) twice returns the existing row.
	InsertDistribution(ctx context.Context, input CreateDistributionInput) (*domain.RoyaltyDistribution, error)
	// DistributionsFor lists the distributions of a remix, oldest first
	DistributionsFor(ctx context.Context, remixID string) ([]domain.RoyaltyDistribution, error)
	// ListUnsettledRemixes lists remixes created before olderThan that have fewer distributions than parents,
	// ordered by creation time then id and starting after the cursor when one is given
	ListUnsettledRemixes(ctx context.Context, olderThan time.Time, after *RemixCursor, limit int) ([]domain.Remix, error)
}

// RemixCursor is a position in the (created_at, remix_id) ordering of remixes
type RemixCursor struct {
	CreatedAt time.Time `json:"createdAt"`
	RemixID   string    `json:"remixId"`
}

// CursorOf returns the position of remix
func CursorOf(remix domain.Remix) *RemixCursor {
	return &RemixCursor{CreatedAt: remix.CreatedAt, RemixID: remix.ID}
}

// KeyValueStore stores small pieces of service state
type KeyValueStore interface {
	// GetKeyValue returns the value of key, or an empty string when missing
	GetKeyValue(ctx context.Context, key string) (string, error)
	// SetKeyValue upserts key
	SetKeyValue(ctx context.Context, key string, value string) error
}

// Store combines every store capability backed by a single database
type Store interface {
	ContentStore
	SettlementStore
	KeyValueStore
}
