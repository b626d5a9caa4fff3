package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/remixrite/remix-ledger/internal/domain"
	"github.com/remixrite/remix-ledger/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// Zero values fall back to the defaults of NormalizeConnectionPoolSettings.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and keeps idle connections within the open limit.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// isUUID reports whether id can be compared against a uuid column.
// Anything else cannot exist, so lookups short-circuit to "not found".
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// =============================================================================
// Clips
// =============================================================================

// FindClip retrieves a clip by id
func (s *pgStore) FindClip(ctx context.Context, id string) (*domain.Clip, error) {
	if !isUUID(id) {
		return nil, nil
	}

	var clip schema.Clip
	err := s.db.WithContext(ctx).Where("clip_id = ?", id).First(&clip).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get clip: %w", err)
	}

	return clipToDomain(&clip)
}

// CreateClip persists a newly registered clip
func (s *pgStore) CreateClip(ctx context.Context, input CreateClipInput) (*domain.Clip, error) {
	metadata, err := json.Marshal(input.Metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal clip metadata: %w", err)
	}

	clip := schema.Clip{
		ID:            uuid.NewString(),
		Title:         input.Title,
		SourceURL:     input.SourceURL,
		Metadata:      datatypes.JSON(metadata),
		OwnerAddress:  input.OwnerAddress,
		LedgerAssetID: input.LedgerAssetID,
	}

	if err := s.db.WithContext(ctx).Create(&clip).Error; err != nil {
		return nil, fmt.Errorf("failed to create clip: %w", err)
	}

	return clipToDomain(&clip)
}

// =============================================================================
// Remixes
// =============================================================================

// GetRemix retrieves a remix by id
func (s *pgStore) GetRemix(ctx context.Context, id string) (*domain.Remix, error) {
	if !isUUID(id) {
		return nil, nil
	}

	var remix schema.Remix
	err := s.db.WithContext(ctx).Where("remix_id = ?", id).First(&remix).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get remix: %w", err)
	}

	r := remixToDomain(&remix)
	return &r, nil
}

// ListRemixesByCreator lists a creator's remixes, newest first
func (s *pgStore) ListRemixesByCreator(ctx context.Context, creatorID string) ([]domain.Remix, error) {
	var remixes []schema.Remix
	err := s.db.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Order("created_at DESC, remix_id DESC").
		Find(&remixes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list remixes by creator: %w", err)
	}

	return remixesToDomain(remixes), nil
}

// ListAllRemixes lists all remixes, newest first
func (s *pgStore) ListAllRemixes(ctx context.Context) ([]domain.Remix, error) {
	var remixes []schema.Remix
	err := s.db.WithContext(ctx).
		Order("created_at DESC, remix_id DESC").
		Find(&remixes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list remixes: %w", err)
	}

	return remixesToDomain(remixes), nil
}

// InsertRemix persists a remix row
func (s *pgStore) InsertRemix(ctx context.Context, draft domain.RemixDraft) (*domain.Remix, error) {
	if len(draft.OriginalClipIDs) == 0 {
		return nil, errors.New("remix must reference at least one clip")
	}

	remix := schema.Remix{
		ID:              uuid.NewString(),
		CreatorID:       draft.CreatorID,
		Title:           draft.Title,
		OriginalClipIDs: datatypes.JSONSlice[string](draft.OriginalClipIDs),
		OutputURL:       draft.OutputURL,
		LedgerAssetID:   draft.LedgerAssetID,
		LedgerTxHash:    draft.LedgerTxHash,
		Fee:             draft.Fee,
	}

	if err := s.db.WithContext(ctx).Create(&remix).Error; err != nil {
		return nil, fmt.Errorf("failed to create remix: %w", err)
	}

	r := remixToDomain(&remix)
	return &r, nil
}

// ListUnsettledRemixes lists remixes whose distribution count is below their parent count
func (s *pgStore) ListUnsettledRemixes(ctx context.Context, olderThan time.Time, after *RemixCursor, limit int) ([]domain.Remix, error) {
	query := s.db.WithContext(ctx).
		Where("created_at < ?", olderThan).
		Where(`(SELECT count(*) FROM royalty_distributions d WHERE d.remix_id = remixes.remix_id)
			< jsonb_array_length(remixes.original_clip_ids)`)
	if after != nil {
		query = query.Where("(created_at, remix_id) > (?, ?)", after.CreatedAt, after.RemixID)
	}

	var remixes []schema.Remix
	err := query.
		Order("created_at ASC").
		Order("remix_id ASC").
		Limit(limit).
		Find(&remixes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list unsettled remixes: %w", err)
	}

	return remixesToDomain(remixes), nil
}

// =============================================================================
// Royalty distributions
// =============================================================================

// InsertDistribution persists a distribution row, returning the existing row on replay
func (s *pgStore) InsertDistribution(ctx context.Context, input CreateDistributionInput) (*domain.RoyaltyDistribution, error) {
	distribution := schema.RoyaltyDistribution{
		ID:                   uuid.NewString(),
		RemixID:              input.RemixID,
		ClipID:               input.ClipID,
		OriginalOwnerAddress: input.OwnerAddress,
		Amount:               input.Amount,
	}

	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "remix_id"},
			{Name: "clip_id"},
			{Name: "original_owner_address"},
		},
		DoNothing: true,
	}).Create(&distribution)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to create royalty distribution: %w", result.Error)
	}

	// Zero rows affected means the triple was already settled
	if result.RowsAffected == 0 {
		err := s.db.WithContext(ctx).
			Where("remix_id = ? AND clip_id = ? AND original_owner_address = ?",
				input.RemixID, input.ClipID, input.OwnerAddress).
			First(&distribution).Error
		if err != nil {
			return nil, fmt.Errorf("failed to get existing royalty distribution: %w", err)
		}
	}

	d := distributionToDomain(&distribution)
	return &d, nil
}

// DistributionsFor lists the distributions of a remix, oldest first
func (s *pgStore) DistributionsFor(ctx context.Context, remixID string) ([]domain.RoyaltyDistribution, error) {
	if !isUUID(remixID) {
		return []domain.RoyaltyDistribution{}, nil
	}

	var rows []schema.RoyaltyDistribution
	err := s.db.WithContext(ctx).
		Where("remix_id = ?", remixID).
		Order("timestamp ASC, distribution_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get royalty distributions: %w", err)
	}

	distributions := make([]domain.RoyaltyDistribution, 0, len(rows))
	for i := range rows {
		distributions = append(distributions, distributionToDomain(&rows[i]))
	}
	return distributions, nil
}

// =============================================================================
// Key-value store
// =============================================================================

// SetKeyValue sets a key-value pair in the key-value store
func (s *pgStore) SetKeyValue(ctx context.Context, key string, value string) error {
	kv := schema.KeyValueStore{
		Key:   key,
		Value: value,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&kv).Error
	if err != nil {
		return fmt.Errorf("failed to set key-value: %w", err)
	}

	return nil
}

// GetKeyValue retrieves a value by key from the key-value store
func (s *pgStore) GetKeyValue(ctx context.Context, key string) (string, error) {
	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get key-value: %w", err)
	}

	return kv.Value, nil
}
