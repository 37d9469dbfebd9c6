package repositoryImp

import (
	"errors"

	"gorm.io/gorm"

	"github.com/lcorrigan704/client-management-system/entities"
	"github.com/lcorrigan704/client-management-system/pkg/client/repository"
	"github.com/lcorrigan704/client-management-system/pkg/versioning"
)

type clientRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ClientRepository { return &clientRepo{db} }

func (r *clientRepo) Create(cl *entities.Client) error { return r.db.Create(cl).Error }

func (r *clientRepo) Get(id uint) (*entities.Client, error) {
	var cl entities.Client
	err := r.db.First(&cl, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, versioning.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cl, nil
}

func (r *clientRepo) List() ([]entities.Client, error) {
	var out []entities.Client
	err := r.db.Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *clientRepo) Update(cl *entities.Client) error { return r.db.Save(cl).Error }

// Delete removes the client with every agreement and proposal it owns,
// their version histories, comments and reactions, bottom up in one
// transaction.
func (r *clientRepo) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		agreementIDs := tx.Model(&entities.ServiceAgreement{}).
			Select("id").Where("client_id = ?", id)
		agrVersionIDs := tx.Model(&entities.AgreementVersion{}).
			Select("id").Where("service_agreement_id IN (?)", agreementIDs)
		agrCommentIDs := tx.Model(&entities.AgreementVersionComment{}).
			Select("id").Where("agreement_version_id IN (?)", agrVersionIDs)
		if err := tx.Where("comment_id IN (?)", agrCommentIDs).
			Delete(&entities.AgreementCommentReaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("agreement_version_id IN (?)", agrVersionIDs).
			Delete(&entities.AgreementVersionComment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("service_agreement_id IN (?)", agreementIDs).
			Delete(&entities.AgreementVersion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("service_agreement_id IN (?)", agreementIDs).
			Delete(&entities.ServiceAgreementSLA{}).Error; err != nil {
			return err
		}
		if err := tx.Where("client_id = ?", id).
			Delete(&entities.ServiceAgreement{}).Error; err != nil {
			return err
		}

		proposalIDs := tx.Model(&entities.Proposal{}).
			Select("id").Where("client_id = ?", id)
		propVersionIDs := tx.Model(&entities.ProposalVersion{}).
			Select("id").Where("proposal_id IN (?)", proposalIDs)
		propCommentIDs := tx.Model(&entities.ProposalVersionComment{}).
			Select("id").Where("proposal_version_id IN (?)", propVersionIDs)
		if err := tx.Where("comment_id IN (?)", propCommentIDs).
			Delete(&entities.ProposalCommentReaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("proposal_version_id IN (?)", propVersionIDs).
			Delete(&entities.ProposalVersionComment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("proposal_id IN (?)", proposalIDs).
			Delete(&entities.ProposalVersion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("proposal_id IN (?)", proposalIDs).
			Delete(&entities.ProposalRequirement{}).Error; err != nil {
			return err
		}
		if err := tx.Where("proposal_id IN (?)", proposalIDs).
			Delete(&entities.ProposalAttachment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("client_id = ?", id).
			Delete(&entities.Proposal{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&entities.Client{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return versioning.ErrNotFound
		}
		return nil
	})
}
