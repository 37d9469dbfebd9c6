// database/bootstrap.go
package database

import (
	"log"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"

	"github.com/lcorrigan704/client-management-system/entities"
)

func OpenSQLite(path string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}
	if err := db.Exec(`PRAGMA foreign_keys=ON`).Error; err != nil {
		log.Fatalf("enable foreign keys: %v", err)
	}

	if err := db.AutoMigrate(
		&entities.User{},
		&entities.UserSession{},
		&entities.Settings{},
		&entities.Client{},
		&entities.ServiceAgreement{},
		&entities.ServiceAgreementSLA{},
		&entities.AgreementVersion{},
		&entities.AgreementVersionComment{},
		&entities.AgreementCommentReaction{},
		&entities.Proposal{},
		&entities.ProposalRequirement{},
		&entities.ProposalAttachment{},
		&entities.ProposalVersion{},
		&entities.ProposalVersionComment{},
		&entities.ProposalCommentReaction{},
	); err != nil {
		log.Fatalf("automigrate: %v", err)
	}

	return db
}
