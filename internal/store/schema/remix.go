package schema

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Remix represents the remixes table - derivative works registered on the ledger
type Remix struct {
	// ID is the remix identifier (UUID)
	ID        string `gorm:"column:remix_id;primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatorID string `gorm:"column:creator_id;not null;type:text;index"`
	Title     string `gorm:"column:title;not null;type:text"`
	// OriginalClipIDs are the resolved parent clip ids in request order
	OriginalClipIDs datatypes.JSONSlice[string] `gorm:"column:original_clip_ids;not null;type:jsonb"`
	OutputURL       string                     `gorm:"column:output_url;not null;type:text"`
	LedgerAssetID   string                     `gorm:"column:story_protocol_id;not null;type:text"`
	LedgerTxHash    string                     `gorm:"column:story_protocol_tx_hash;not null;type:text"`
	// Fee is the creation fee split among the parents' owners
	Fee       decimal.Decimal `gorm:"column:fee;not null;type:numeric(20,2)"`
	CreatedAt time.Time       `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Remix model
func (Remix) TableName() string {
	return "remixes"
}
