package schema

import (
	"time"

	"gorm.io/datatypes"
)

// Clip represents the clips table - uploaded, ledger-registered content that can be remixed
type Clip struct {
	// ID is the clip identifier (UUID)
	ID string `gorm:"column:clip_id;primaryKey;type:uuid;default:gen_random_uuid()"`
	// Title is the human readable clip title
	Title string `gorm:"column:title;not null;type:text"`
	// SourceURL is the gateway URL of the uploaded media
	SourceURL string `gorm:"column:source_url;not null;type:text"`
	// Metadata is the descriptive metadata as JSON (duration, type, artist, tags, ...)
	Metadata datatypes.JSON `gorm:"column:metadata;not null;type:jsonb"`
	// OwnerAddress is the 0x-prefixed address that receives royalties
	OwnerAddress string `gorm:"column:owner_address;not null;type:varchar(42)"`
	// LedgerAssetID is the asset identifier on the provenance ledger
	LedgerAssetID string `gorm:"column:story_protocol_id;not null;type:text"`
	CreatedAt     time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Clip model
func (Clip) TableName() string {
	return "clips"
}
