package venues

// CreateVenueRequest is the payload for registering a new venue
type CreateVenueRequest struct {
	Name           string `json:"name" binding:"required,min=2,max=200"`
	Location       string `json:"location" binding:"required,min=2,max=200"`
	MaxCapacity    int    `json:"max_capacity" binding:"required,min=1"`
	AvgServiceTime int    `json:"avg_service_time" binding:"omitempty,min=1"`
	ImageURL       string `json:"image_url"`
}

// UpdateVenueRequest carries partial updates; nil fields are left untouched
type UpdateVenueRequest struct {
	Name           *string `json:"name" binding:"omitempty,min=2,max=200"`
	Location       *string `json:"location" binding:"omitempty,min=2,max=200"`
	MaxCapacity    *int    `json:"max_capacity" binding:"omitempty,min=1"`
	AvgServiceTime *int    `json:"avg_service_time" binding:"omitempty,min=1"`
	ImageURL       *string `json:"image_url"`
}
