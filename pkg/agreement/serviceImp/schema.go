package serviceImp

import (
	"time"

	"gorm.io/gorm"

	"github.com/lcorrigan704/client-management-system/entities"
	"github.com/lcorrigan704/client-management-system/pkg/agreement/service"
	"github.com/lcorrigan704/client-management-system/pkg/versioning"
)

// ledgerSchema binds the generic versioning engine to the agreement
// variant: which json keys stay out of snapshots, how the SLA collection is
// captured and replaced, and how version rows are built.
func ledgerSchema() versioning.Schema[entities.ServiceAgreement, entities.AgreementVersion] {
	return versioning.Schema[entities.ServiceAgreement, entities.AgreementVersion]{
		OwnerColumn: "service_agreement_id",
		ExcludedFields: []string{
			"id", "client_id", "created_at",
			"current_version", "updated_at", "updated_by_user_id",
			"sla_items",
		},
		Collections: []versioning.Collection[entities.ServiceAgreement]{{
			Name: "sla_items",
			Capture: func(a *entities.ServiceAgreement) (string, error) {
				items := make([]service.SLAItemInput, 0, len(a.SLAItems))
				for _, row := range a.SLAItems {
					items = append(items, service.SLAItemInput{SLA: row.SLA, Timescale: row.Timescale})
				}
				return versioning.CaptureCollection(items)
			},
			Replace: func(tx *gorm.DB, a *entities.ServiceAgreement, blob string) error {
				items, err := versioning.DecodeCollection[service.SLAItemInput](blob)
				if err != nil {
					return err
				}
				return replaceSLAItems(tx, a, items)
			},
		}},
		ID: func(a *entities.ServiceAgreement) uint { return a.ID },
		SetCurrent: func(a *entities.ServiceAgreement, version int, at time.Time, actorID *uint) {
			a.CurrentVersion = version
			a.UpdatedAt = &at
			a.UpdatedByUserID = actorID
		},
		NewVersion: func(a *entities.ServiceAgreement, version int, snap versioning.Snapshot, at time.Time, actorID *uint) *entities.AgreementVersion {
			return &entities.AgreementVersion{
				ServiceAgreementID: a.ID,
				VersionNumber:      version,
				Title:              a.Title,
				DataJSON:           snap.Data,
				SLAItemsJSON:       snap.Collections["sla_items"],
				CreatedAt:          at,
				CreatedByUserID:    actorID,
			}
		},
		Snapshot: func(v *entities.AgreementVersion) versioning.Snapshot {
			return versioning.Snapshot{
				Data:        v.DataJSON,
				Collections: map[string]string{"sla_items": v.SLAItemsJSON},
			}
		},
	}
}

func threadSchema() versioning.ThreadSchema[entities.AgreementVersionComment, entities.AgreementCommentReaction] {
	return versioning.ThreadSchema[entities.AgreementVersionComment, entities.AgreementCommentReaction]{
		VersionExists: func(tx *gorm.DB, versionID uint) error {
			var v entities.AgreementVersion
			return tx.Select("id").First(&v, versionID).Error
		},
		NewComment: func(versionID uint, fieldKey, body string, mentions []string, at time.Time, actorID *uint) *entities.AgreementVersionComment {
			return &entities.AgreementVersionComment{
				AgreementVersionID: versionID,
				FieldKey:           fieldKey,
				Comment:            body,
				Mentions:           mentions,
				CreatedAt:          at,
				CreatedByUserID:    actorID,
			}
		},
		NewReaction: func(commentID, userID uint, value string, at time.Time) *entities.AgreementCommentReaction {
			return &entities.AgreementCommentReaction{
				CommentID: commentID,
				UserID:    userID,
				Reaction:  value,
				CreatedAt: at,
			}
		},
		ReactionValue: func(r *entities.AgreementCommentReaction) string { return r.Reaction },
	}
}

// replaceSLAItems swaps the agreement's SLA rows wholesale; restores and
// updates never merge.
func replaceSLAItems(tx *gorm.DB, a *entities.ServiceAgreement, items []service.SLAItemInput) error {
	if err := tx.Where("service_agreement_id = ?", a.ID).
		Delete(&entities.ServiceAgreementSLA{}).Error; err != nil {
		return err
	}
	rows := make([]entities.ServiceAgreementSLA, 0, len(items))
	for _, item := range items {
		rows = append(rows, entities.ServiceAgreementSLA{
			ServiceAgreementID: a.ID,
			SLA:                item.SLA,
			Timescale:          item.Timescale,
		})
	}
	if len(rows) > 0 {
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
	}
	a.SLAItems = rows
	return nil
}
