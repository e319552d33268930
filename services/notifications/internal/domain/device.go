package domain

// Device is one registered push endpoint. (user_id, push_token) is unique;
// the table is written by the provider service and read here.
type Device struct {
	UserID    int64  `gorm:"primaryKey;autoIncrement:false"`
	PushToken string `gorm:"primaryKey"`
	Platform  string
}

func (Device) TableName() string { return "user_devices" }
