package repository

import "github.com/lcorrigan704/client-management-system/entities"

type ProposalRepository interface {
	Create(p *entities.Proposal) error
	Get(id uint) (*entities.Proposal, error)
	List() ([]entities.Proposal, error)
	Delete(id uint) error
	Versions(proposalID uint) ([]entities.ProposalVersion, error)
	CommentsForVersions(versionIDs []uint) ([]entities.ProposalVersionComment, error)
}
