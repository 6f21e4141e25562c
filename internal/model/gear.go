package model

// Gear is a bike or pair of shoes attached to activities.
type Gear struct {
	ID          string  `json:"id"`
	Name        string  `json:"name,omitempty"`
	Nickname    string  `json:"nickname,omitempty"`
	BrandName   string  `json:"brand_name,omitempty"`
	ModelName   string  `json:"model_name,omitempty"`
	Distance    float64 `json:"distance,omitempty"`
	Primary     bool    `json:"primary,omitempty"`
	Retired     bool    `json:"retired,omitempty"`
	Description string  `json:"description,omitempty"`
}
