package domain

// Provider is a directory entry for a service provider.
type Provider struct {
	ID        int64    `gorm:"primaryKey" json:"id"`
	Name      string   `gorm:"size:120;not null" json:"name"`
	Verified  bool     `gorm:"not null;default:false" json:"verified"`
	RatingAvg *float64 `json:"rating_avg"`
	Skills    *string  `json:"skills"` // comma-separated for the MVP
	PriceBand *string  `gorm:"size:32" json:"price_band"`
	Lat       *float64 `json:"lat"`
	Lon       *float64 `json:"lon"`
}

func (Provider) TableName() string { return "providers" }

// Device is one registered push endpoint; (user_id, push_token) is unique
// and re-registration is a no-op.
type Device struct {
	UserID    int64  `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	PushToken string `gorm:"primaryKey" json:"push_token"`
	Platform  string `json:"platform"`
}

func (Device) TableName() string { return "user_devices" }
