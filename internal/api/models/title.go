package models

type Title struct {
	ID          int64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string   `json:"name" gorm:"not null"`
	Year        int      `json:"year" gorm:"not null"`
	Description *string  `json:"description,omitempty"`
	CategoryID  *int64   `json:"-" gorm:"index"`
	// Read-time aggregate, never persisted. Filled by the repository from
	// AVG(reviews.score); nil when the title has no reviews.
	Rating *float64 `json:"rating" gorm:"->;-:migration"`

	// Associations
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL;"`
	Genres   []Genre   `json:"genres,omitempty" gorm:"many2many:title_genres;constraint:OnDelete:CASCADE;"`
}

func (Title) TableName() string {
	return "titles"
}
