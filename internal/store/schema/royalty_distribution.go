package schema

import (
	"time"

	"github.com/shopspring/decimal"
)

// RoyaltyDistribution represents the royalty_distributions table.
// One row per (remix, parent clip, owner); the triple is unique so writes can be replayed.
type RoyaltyDistribution struct {
	ID                   string          `gorm:"column:distribution_id;primaryKey;type:uuid;default:gen_random_uuid()"`
	RemixID              string          `gorm:"column:remix_id;not null;type:uuid"`
	ClipID               string          `gorm:"column:clip_id;not null;type:uuid"`
	OriginalOwnerAddress string          `gorm:"column:original_owner_address;not null;type:varchar(42)"`
	Amount               decimal.Decimal `gorm:"column:amount;not null;type:numeric(20,2)"`
	Timestamp            time.Time       `gorm:"column:timestamp;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the RoyaltyDistribution model
func (RoyaltyDistribution) TableName() string {
	return "royalty_distributions"
}
