package repositoryImp

import (
	"errors"

	"gorm.io/gorm"

	"github.com/lcorrigan704/client-management-system/entities"
	"github.com/lcorrigan704/client-management-system/pkg/agreement/repository"
	"github.com/lcorrigan704/client-management-system/pkg/versioning"
)

type agreementRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.AgreementRepository { return &agreementRepo{db} }

func (r *agreementRepo) Create(a *entities.ServiceAgreement) error {
	return r.db.Create(a).Error
}

func (r *agreementRepo) Get(id uint) (*entities.ServiceAgreement, error) {
	var a entities.ServiceAgreement
	err := r.db.Preload("SLAItems").Preload("UpdatedByUser").First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, versioning.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *agreementRepo) List() ([]entities.ServiceAgreement, error) {
	var out []entities.ServiceAgreement
	err := r.db.Preload("SLAItems").Preload("UpdatedByUser").
		Order("created_at DESC").Find(&out).Error
	return out, err
}

// Delete removes the agreement and everything hanging off it. Dependent
// rows are cleared explicitly, bottom up, inside one transaction rather
// than trusting the driver's pragma state.
func (r *agreementRepo) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		versionIDs := tx.Model(&entities.AgreementVersion{}).
			Select("id").Where("service_agreement_id = ?", id)
		commentIDs := tx.Model(&entities.AgreementVersionComment{}).
			Select("id").Where("agreement_version_id IN (?)", versionIDs)
		if err := tx.Where("comment_id IN (?)", commentIDs).
			Delete(&entities.AgreementCommentReaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("agreement_version_id IN (?)", versionIDs).
			Delete(&entities.AgreementVersionComment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("service_agreement_id = ?", id).
			Delete(&entities.AgreementVersion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("service_agreement_id = ?", id).
			Delete(&entities.ServiceAgreementSLA{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&entities.ServiceAgreement{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return versioning.ErrNotFound
		}
		return nil
	})
}

func (r *agreementRepo) Versions(agreementID uint) ([]entities.AgreementVersion, error) {
	var out []entities.AgreementVersion
	err := r.db.Preload("CreatedByUser").
		Where("service_agreement_id = ?", agreementID).
		Order("version_number ASC").Find(&out).Error
	return out, err
}

func (r *agreementRepo) CommentsForVersions(versionIDs []uint) ([]entities.AgreementVersionComment, error) {
	if len(versionIDs) == 0 {
		return []entities.AgreementVersionComment{}, nil
	}
	var out []entities.AgreementVersionComment
	err := r.db.Preload("CreatedByUser").
		Where("agreement_version_id IN ?", versionIDs).
		Order("created_at ASC, id ASC").Find(&out).Error
	return out, err
}
