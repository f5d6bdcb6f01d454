package inventory

import (
	"html"
	"strings"
	"time"

	"github.com/armoryhq/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// NoImage is the sentinel ImageURL value meaning "no image set".
const NoImage = "#"

// Item represents a catalog item that can be stocked by sellers.
// It is the aggregate root for the item write pipeline.
type Item struct {
	shared.BaseEntity
	Name        string    `gorm:"type:varchar(200);not null"`
	Description string    `gorm:"type:text;not null"`
	Quality     string    `gorm:"type:varchar(50);not null"`
	SlotID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Slot        *Slot     `gorm:"foreignKey:SlotID"`
	ImageURL    string    `gorm:"type:varchar(512);not null;default:'#'"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "items"
}

// NewItem creates a new item without an image. The image URL starts out as
// the NoImage sentinel and is set by the write pipeline after a successful
// media upload.
func NewItem(name, description, quality string, slotID uuid.UUID) (*Item, error) {
	if err := validateItemFields(name, description, quality, slotID); err != nil {
		return nil, err
	}

	return &Item{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
		Quality:     quality,
		SlotID:      slotID,
		ImageURL:    NoImage,
	}, nil
}

// Update replaces the item's editable fields
func (i *Item) Update(name, description, quality string, slotID uuid.UUID) error {
	if err := validateItemFields(name, description, quality, slotID); err != nil {
		return err
	}

	i.Name = name
	i.Description = description
	i.Quality = quality
	i.SlotID = slotID
	i.Slot = nil
	i.UpdatedAt = time.Now()

	return nil
}

// SetImageURL records the public URL returned by the media store
func (i *Item) SetImageURL(url string) {
	if url == "" {
		url = NoImage
	}
	i.ImageURL = url
	i.UpdatedAt = time.Now()
}

// HasImage reports whether the item has a stored image
func (i *Item) HasImage() bool {
	return i.ImageURL != "" && i.ImageURL != NoImage
}

func validateItemFields(name, description, quality string, slotID uuid.UUID) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	// Stored text is HTML-escaped; the minimum applies to the underlying
	// text, not its entity-expanded form.
	if len(strings.TrimSpace(html.UnescapeString(description))) < 3 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Item description must be at least 3 characters")
	}
	if strings.TrimSpace(quality) == "" {
		return shared.NewDomainError("INVALID_QUALITY", "Item quality cannot be empty")
	}
	if slotID == uuid.Nil {
		return shared.NewDomainError("INVALID_SLOT", "Item slot is required")
	}
	return nil
}
