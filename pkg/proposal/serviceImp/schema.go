package serviceImp

import (
	"time"

	"gorm.io/gorm"

	"github.com/lcorrigan704/client-management-system/entities"
	"github.com/lcorrigan704/client-management-system/pkg/proposal/service"
	"github.com/lcorrigan704/client-management-system/pkg/versioning"
)

// ledgerSchema binds the versioning engine to the proposal variant, which
// carries two nested collections and denormalizes status onto its version
// rows.
func ledgerSchema() versioning.Schema[entities.Proposal, entities.ProposalVersion] {
	return versioning.Schema[entities.Proposal, entities.ProposalVersion]{
		OwnerColumn: "proposal_id",
		ExcludedFields: []string{
			"id", "client_id", "created_at",
			"current_version", "updated_at", "updated_by_user_id",
			"requirements", "attachments",
		},
		Collections: []versioning.Collection[entities.Proposal]{
			{
				Name: "requirements",
				Capture: func(p *entities.Proposal) (string, error) {
					items := make([]service.RequirementInput, 0, len(p.Requirements))
					for _, row := range p.Requirements {
						items = append(items, service.RequirementInput{Description: row.Description})
					}
					return versioning.CaptureCollection(items)
				},
				Replace: func(tx *gorm.DB, p *entities.Proposal, blob string) error {
					items, err := versioning.DecodeCollection[service.RequirementInput](blob)
					if err != nil {
						return err
					}
					return replaceRequirements(tx, p, items)
				},
			},
			{
				Name: "attachments",
				Capture: func(p *entities.Proposal) (string, error) {
					items := make([]service.AttachmentInput, 0, len(p.Attachments))
					for _, row := range p.Attachments {
						items = append(items, service.AttachmentInput{Filename: row.Filename, FilePath: row.FilePath})
					}
					return versioning.CaptureCollection(items)
				},
				Replace: func(tx *gorm.DB, p *entities.Proposal, blob string) error {
					items, err := versioning.DecodeCollection[service.AttachmentInput](blob)
					if err != nil {
						return err
					}
					return replaceAttachments(tx, p, items)
				},
			},
		},
		ID: func(p *entities.Proposal) uint { return p.ID },
		SetCurrent: func(p *entities.Proposal, version int, at time.Time, actorID *uint) {
			p.CurrentVersion = version
			p.UpdatedAt = &at
			p.UpdatedByUserID = actorID
		},
		NewVersion: func(p *entities.Proposal, version int, snap versioning.Snapshot, at time.Time, actorID *uint) *entities.ProposalVersion {
			return &entities.ProposalVersion{
				ProposalID:       p.ID,
				VersionNumber:    version,
				Title:            p.Title,
				Status:           p.Status,
				DataJSON:         snap.Data,
				RequirementsJSON: snap.Collections["requirements"],
				AttachmentsJSON:  snap.Collections["attachments"],
				CreatedAt:        at,
				CreatedByUserID:  actorID,
			}
		},
		Snapshot: func(v *entities.ProposalVersion) versioning.Snapshot {
			return versioning.Snapshot{
				Data: v.DataJSON,
				Collections: map[string]string{
					"requirements": v.RequirementsJSON,
					"attachments":  v.AttachmentsJSON,
				},
			}
		},
	}
}

func threadSchema() versioning.ThreadSchema[entities.ProposalVersionComment, entities.ProposalCommentReaction] {
	return versioning.ThreadSchema[entities.ProposalVersionComment, entities.ProposalCommentReaction]{
		VersionExists: func(tx *gorm.DB, versionID uint) error {
			var v entities.ProposalVersion
			return tx.Select("id").First(&v, versionID).Error
		},
		NewComment: func(versionID uint, fieldKey, body string, mentions []string, at time.Time, actorID *uint) *entities.ProposalVersionComment {
			return &entities.ProposalVersionComment{
				ProposalVersionID: versionID,
				FieldKey:          fieldKey,
				Comment:           body,
				Mentions:          mentions,
				CreatedAt:         at,
				CreatedByUserID:   actorID,
			}
		},
		NewReaction: func(commentID, userID uint, value string, at time.Time) *entities.ProposalCommentReaction {
			return &entities.ProposalCommentReaction{
				CommentID: commentID,
				UserID:    userID,
				Reaction:  value,
				CreatedAt: at,
			}
		},
		ReactionValue: func(r *entities.ProposalCommentReaction) string { return r.Reaction },
	}
}

func replaceRequirements(tx *gorm.DB, p *entities.Proposal, items []service.RequirementInput) error {
	if err := tx.Where("proposal_id = ?", p.ID).
		Delete(&entities.ProposalRequirement{}).Error; err != nil {
		return err
	}
	rows := make([]entities.ProposalRequirement, 0, len(items))
	for _, item := range items {
		rows = append(rows, entities.ProposalRequirement{
			ProposalID:  p.ID,
			Description: item.Description,
		})
	}
	if len(rows) > 0 {
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
	}
	p.Requirements = rows
	return nil
}

func replaceAttachments(tx *gorm.DB, p *entities.Proposal, items []service.AttachmentInput) error {
	if err := tx.Where("proposal_id = ?", p.ID).
		Delete(&entities.ProposalAttachment{}).Error; err != nil {
		return err
	}
	rows := make([]entities.ProposalAttachment, 0, len(items))
	for _, item := range items {
		rows = append(rows, entities.ProposalAttachment{
			ProposalID: p.ID,
			Filename:   item.Filename,
			FilePath:   item.FilePath,
		})
	}
	if len(rows) > 0 {
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
	}
	p.Attachments = rows
	return nil
}
