package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/pageza/nutrisaur/backend/internal/recommend"
)

// StringList is a string slice stored as a JSON array in a text column
type StringList []string

// Value implements the driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (l *StringList) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*l = StringList{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported StringList source %T", value)
	}
	if len(raw) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(raw, (*[]string)(l))
}

// Dish is a catalog entry. Position fixes the catalog order the recommender relies on.
type Dish struct {
	ID          uuid.UUID      `gorm:"type:varchar(36);primaryKey" json:"id"`
	Code        string         `gorm:"size:100;not null;uniqueIndex" json:"code"`
	Position    int            `gorm:"not null;index" json:"position"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Tags        pq.StringArray `gorm:"type:text[]" json:"tags"`
	Allergens   pq.StringArray `gorm:"type:text[]" json:"allergens"`
	Calories    float64        `json:"calories"`
	Protein     float64        `json:"protein"`
	Iron        float64        `json:"iron"`
	VitaminA    float64        `json:"vitamin_a"`
	VitaminC    float64        `json:"vitamin_c"`
	Fiber       float64        `json:"fiber"`
	Calcium     float64        `json:"calcium"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (d *Dish) BeforeCreate(*gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// ToRecommend converts the row into the engine's immutable dish value.
// Unknown tag codes and allergen names are dropped.
func (d *Dish) ToRecommend() recommend.Dish {
	return recommend.Dish{
		ID:          d.Code,
		Name:        d.Name,
		Description: d.Description,
		Tags:        recommend.ParseTagSet(d.Tags),
		Allergens:   recommend.ParseAllergenSet(d.Allergens),
		Nutrients: recommend.Nutrients{
			Calories: d.Calories,
			Protein:  d.Protein,
			Iron:     d.Iron,
			VitaminA: d.VitaminA,
			VitaminC: d.VitaminC,
			Fiber:    d.Fiber,
			Calcium:  d.Calcium,
		},
	}
}
