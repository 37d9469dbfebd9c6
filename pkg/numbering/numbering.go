package numbering

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/lcorrigan704/client-management-system/entities"
)

// Get returns the single settings row, creating it with defaults on first
// use.
func Get(db *gorm.DB) (*entities.Settings, error) {
	var s entities.Settings
	if err := db.FirstOrCreate(&s, entities.Settings{ID: 1}).Error; err != nil {
		return nil, err
	}
	if s.AgreementPrefix == "" {
		s.AgreementPrefix = "AGR"
	}
	if s.ProposalPrefix == "" {
		s.ProposalPrefix = "PROP"
	}
	return &s, nil
}

// DisplayID builds the human-facing document number, offset so the series
// starts at 1000.
func DisplayID(prefix string, id uint) string {
	return fmt.Sprintf("%s-%d", prefix, id+999)
}
