package inventory

import (
	"strings"
	"time"

	"github.com/armoryhq/backend/internal/domain/shared"
)

// Seller represents a merchant that stocks item listings
type Seller struct {
	shared.BaseEntity
	Name string `gorm:"type:varchar(200);not null"`
}

// TableName returns the table name for GORM
func (Seller) TableName() string {
	return "sellers"
}

// NewSeller creates a new seller
func NewSeller(name string) (*Seller, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Seller name cannot be empty")
	}
	return &Seller{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
	}, nil
}

// Rename changes the seller's display name
func (s *Seller) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Seller name cannot be empty")
	}
	s.Name = name
	s.UpdatedAt = time.Now()
	return nil
}
