package repositoryImp

import (
	"errors"

	"gorm.io/gorm"

	"github.com/lcorrigan704/client-management-system/entities"
	"github.com/lcorrigan704/client-management-system/pkg/proposal/repository"
	"github.com/lcorrigan704/client-management-system/pkg/versioning"
)

type proposalRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ProposalRepository { return &proposalRepo{db} }

func (r *proposalRepo) Create(p *entities.Proposal) error {
	return r.db.Create(p).Error
}

func (r *proposalRepo) Get(id uint) (*entities.Proposal, error) {
	var p entities.Proposal
	err := r.db.Preload("Requirements").Preload("Attachments").
		Preload("UpdatedByUser").First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, versioning.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *proposalRepo) List() ([]entities.Proposal, error) {
	var out []entities.Proposal
	err := r.db.Preload("Requirements").Preload("Attachments").
		Preload("UpdatedByUser").Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *proposalRepo) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		versionIDs := tx.Model(&entities.ProposalVersion{}).
			Select("id").Where("proposal_id = ?", id)
		commentIDs := tx.Model(&entities.ProposalVersionComment{}).
			Select("id").Where("proposal_version_id IN (?)", versionIDs)
		if err := tx.Where("comment_id IN (?)", commentIDs).
			Delete(&entities.ProposalCommentReaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("proposal_version_id IN (?)", versionIDs).
			Delete(&entities.ProposalVersionComment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("proposal_id = ?", id).
			Delete(&entities.ProposalVersion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("proposal_id = ?", id).
			Delete(&entities.ProposalRequirement{}).Error; err != nil {
			return err
		}
		if err := tx.Where("proposal_id = ?", id).
			Delete(&entities.ProposalAttachment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&entities.Proposal{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return versioning.ErrNotFound
		}
		return nil
	})
}

func (r *proposalRepo) Versions(proposalID uint) ([]entities.ProposalVersion, error) {
	var out []entities.ProposalVersion
	err := r.db.Preload("CreatedByUser").
		Where("proposal_id = ?", proposalID).
		Order("version_number ASC").Find(&out).Error
	return out, err
}

func (r *proposalRepo) CommentsForVersions(versionIDs []uint) ([]entities.ProposalVersionComment, error) {
	if len(versionIDs) == 0 {
		return []entities.ProposalVersionComment{}, nil
	}
	var out []entities.ProposalVersionComment
	err := r.db.Preload("CreatedByUser").
		Where("proposal_version_id IN ?", versionIDs).
		Order("created_at ASC, id ASC").Find(&out).Error
	return out, err
}
