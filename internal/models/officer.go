package models

// Officer is a directory entry used to populate the submission form.
type Officer struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:text;not null" json:"name"`
	// Category is the role the officer can fill: "td", "pdu" or "transmisi".
	Category string `gorm:"type:text;not null;index" json:"jenis"`
}

func (Officer) TableName() string { return "officers" }
