package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/madhavavarma/storeadminnom/pkg/types"
)

// AppSettings is a single-row key/value table holding dashboard configuration.
// The checkout schema lives here as opaque JSON; the checkoutform package owns
// its shape.
type AppSettings struct {
	ID        uuid.UUID     `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Key       string        `gorm:"column:key;not null;uniqueIndex"`
	Value     types.JSONMap `gorm:"column:value;type:jsonb;serializer:json"`
	CreatedAt time.Time     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time     `gorm:"column:updated_at;autoUpdateTime"`
}
