package venues

import (
	"time"

	"github.com/google/uuid"
)

// Venue is a place customers can queue for. AvgServiceTime is the staff's
// minutes-per-party estimate driving wait-time calculation; zero means unset.
type Venue struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name           string    `json:"name" gorm:"not null"`
	Location       string    `json:"location" gorm:"not null"`
	MaxCapacity    int       `json:"max_capacity" gorm:"not null"`
	AvgServiceTime int       `json:"avg_service_time"` // minutes per party
	ImageURL       string    `json:"image_url"`
	OwnerID        uuid.UUID `json:"owner_id" gorm:"type:uuid;not null;index"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
