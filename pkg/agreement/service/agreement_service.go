package service

import (
	"time"

	"github.com/lcorrigan704/client-management-system/entities"
	"github.com/lcorrigan704/client-management-system/pkg/versioning"
)

type SLAItemInput struct {
	SLA       string `json:"sla"`
	Timescale string `json:"timescale"`
}

// AgreementInput carries one create or update payload. Nil fields are left
// unchanged on update; a non-nil SLAItems replaces the collection wholesale.
type AgreementInput struct {
	DisplayID             *string         `json:"display_id"`
	Title                 *string         `json:"title"`
	Summary               *string         `json:"summary"`
	Content               *string         `json:"content"`
	DocumentURL           *string         `json:"document_url"`
	StartDate             *time.Time      `json:"start_date"`
	EndDate               *time.Time      `json:"end_date"`
	ScopeOfServices       *string         `json:"scope_of_services"`
	Duration              *string         `json:"duration"`
	Availability          *string         `json:"availability"`
	Meetings              *string         `json:"meetings"`
	AccessRequirements    *string         `json:"access_requirements"`
	FeesPayments          *string         `json:"fees_payments"`
	DataProtection        *string         `json:"data_protection"`
	Termination           *string         `json:"termination"`
	CompanySignatoryName  *string         `json:"company_signatory_name"`
	CompanySignatoryTitle *string         `json:"company_signatory_title"`
	CompanySignedDate     *time.Time      `json:"company_signed_date"`
	ClientSignatoryName   *string         `json:"client_signatory_name"`
	SLAItems              *[]SLAItemInput `json:"sla_items"`
}

type AgreementOut struct {
	entities.ServiceAgreement
	UpdatedByEmail string `json:"updated_by_email,omitempty"`
}

// VersionDetail is a version summary plus its full snapshot contents.
type VersionDetail struct {
	versioning.VersionSummary
	Fields   map[string]any `json:"fields"`
	SLAItems []SLAItemInput `json:"sla_items"`
}

type AgreementService interface {
	Create(clientID uint, in AgreementInput, actorID *uint) (*AgreementOut, *entities.AgreementVersion, error)
	Update(id uint, in AgreementInput, actorID *uint) (*AgreementOut, *entities.AgreementVersion, error)
	Get(id uint) (*AgreementOut, error)
	List() ([]AgreementOut, error)
	Delete(id uint) error

	Versions(id uint) ([]versioning.VersionSummary, error)
	VersionDetail(id uint, number int) (*VersionDetail, error)
	RestoreVersion(id uint, number int, actorID *uint) (*AgreementOut, *entities.AgreementVersion, error)

	Comments(id uint) ([]versioning.CommentView, error)
	VersionComments(id uint, number int) ([]versioning.CommentView, error)
	AddComment(id uint, number int, fieldKey, body string, mentions []string, actorID *uint) (*versioning.CommentView, error)
	SetCommentImplemented(commentID uint, value bool) (*versioning.CommentView, error)
	React(commentID, userID uint, value string) (*versioning.CommentView, error)
}
