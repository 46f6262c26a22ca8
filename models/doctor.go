package models

import "time"

// Doctor is a directory entry patients can book against.
type Doctor struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Specialty string    `bson:"specialty" json:"specialty"`
	Fee       float64   `bson:"fee" json:"fee"`
	Bio       string    `bson:"bio,omitempty" json:"bio,omitempty"`
	ImageURL  string    `bson:"image_url,omitempty" json:"image_url,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// DoctorUpdate carries optional fields for admin edits.
type DoctorUpdate struct {
	Name      *string  `json:"name"`
	Specialty *string  `json:"specialty"`
	Fee       *float64 `json:"fee"`
	Bio       *string  `json:"bio"`
	ImageURL  *string  `json:"image_url"`
}
