package service

import (
	"time"

	"github.com/lcorrigan704/client-management-system/entities"
	"github.com/lcorrigan704/client-management-system/pkg/versioning"
)

type RequirementInput struct {
	Description string `json:"description"`
}

type AttachmentInput struct {
	Filename string `json:"filename"`
	FilePath string `json:"file_path"`
}

// ProposalInput carries one create or update payload. Nil fields are left
// unchanged on update; non-nil collections replace wholesale.
type ProposalInput struct {
	DisplayID    *string             `json:"display_id"`
	Title        *string             `json:"title"`
	Status       *string             `json:"status"`
	SubmittedOn  *time.Time          `json:"submitted_on"`
	ValidUntil   *time.Time          `json:"valid_until"`
	Summary      *string             `json:"summary"`
	Approach     *string             `json:"approach"`
	Timeline     *string             `json:"timeline"`
	Content      *string             `json:"content"`
	Requirements *[]RequirementInput `json:"requirements"`
	Attachments  *[]AttachmentInput  `json:"attachments"`
}

type ProposalOut struct {
	entities.Proposal
	UpdatedByEmail string `json:"updated_by_email,omitempty"`
}

type VersionDetail struct {
	versioning.VersionSummary
	Fields       map[string]any     `json:"fields"`
	Requirements []RequirementInput `json:"requirements"`
	Attachments  []AttachmentInput  `json:"attachments"`
}

type ProposalService interface {
	Create(clientID uint, in ProposalInput, actorID *uint) (*ProposalOut, *entities.ProposalVersion, error)
	Update(id uint, in ProposalInput, actorID *uint) (*ProposalOut, *entities.ProposalVersion, error)
	Get(id uint) (*ProposalOut, error)
	List() ([]ProposalOut, error)
	Delete(id uint) error

	Versions(id uint) ([]versioning.VersionSummary, error)
	VersionDetail(id uint, number int) (*VersionDetail, error)
	RestoreVersion(id uint, number int, actorID *uint) (*ProposalOut, *entities.ProposalVersion, error)

	Comments(id uint) ([]versioning.CommentView, error)
	VersionComments(id uint, number int) ([]versioning.CommentView, error)
	AddComment(id uint, number int, fieldKey, body string, mentions []string, actorID *uint) (*versioning.CommentView, error)
	SetCommentImplemented(commentID uint, value bool) (*versioning.CommentView, error)
	React(commentID, userID uint, value string) (*versioning.CommentView, error)
}
