package layouts

import (
	"time"

	"github.com/google/uuid"
)

// LayoutRecord is the persisted form of a seat-map document. The canvas
// itself is stored as the JSON document the editor produces; rows and
// categories live inside it, so the database never needs to understand
// seat-level structure.
type LayoutRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name      string    `gorm:"not null;index"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Document  []byte    `gorm:"type:jsonb;not null"`
	Version   int       `gorm:"not null;default:1"`
	Published bool      `gorm:"not null;default:false;index"`
	SeatCount int       `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
