package repository

import "github.com/lcorrigan704/client-management-system/entities"

type AgreementRepository interface {
	Create(a *entities.ServiceAgreement) error
	Get(id uint) (*entities.ServiceAgreement, error)
	List() ([]entities.ServiceAgreement, error)
	Delete(id uint) error
	Versions(agreementID uint) ([]entities.AgreementVersion, error)
	CommentsForVersions(versionIDs []uint) ([]entities.AgreementVersionComment, error)
}
