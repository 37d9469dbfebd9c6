package entities

import "time"

type ServiceAgreement struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	DisplayID string `gorm:"size:30;uniqueIndex" json:"display_id"`
	ClientID  uint   `gorm:"index;not null" json:"client_id"`

	Title                 string     `gorm:"size:200;not null" json:"title"`
	Summary               string     `gorm:"type:text" json:"summary"`
	Content               string     `gorm:"type:text" json:"content"`
	DocumentURL           string     `gorm:"size:500" json:"document_url"`
	StartDate             *time.Time `json:"start_date"`
	EndDate               *time.Time `json:"end_date"`
	ScopeOfServices       string     `gorm:"type:text" json:"scope_of_services"`
	Duration              string     `gorm:"type:text" json:"duration"`
	Availability          string     `gorm:"type:text" json:"availability"`
	Meetings              string     `gorm:"type:text" json:"meetings"`
	AccessRequirements    string     `gorm:"type:text" json:"access_requirements"`
	FeesPayments          string     `gorm:"type:text" json:"fees_payments"`
	DataProtection        string     `gorm:"type:text" json:"data_protection"`
	Termination           string     `gorm:"type:text" json:"termination"`
	CompanySignatoryName  string     `gorm:"size:200" json:"company_signatory_name"`
	CompanySignatoryTitle string     `gorm:"size:200" json:"company_signatory_title"`
	CompanySignedDate     *time.Time `json:"company_signed_date"`
	ClientSignatoryName   string     `gorm:"size:200" json:"client_signatory_name"`
	CreatedAt             time.Time  `json:"created_at"`

	// Versioning metadata owned by the ledger: CurrentVersion is always the
	// number of the most recent version row.
	CurrentVersion  int        `gorm:"default:0" json:"current_version"`
	UpdatedAt       *time.Time `json:"updated_at"`
	UpdatedByUserID *uint      `json:"updated_by_user_id"`

	UpdatedByUser *User                 `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	SLAItems      []ServiceAgreementSLA `gorm:"constraint:OnDelete:CASCADE" json:"sla_items"`
	Versions      []AgreementVersion    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type ServiceAgreementSLA struct {
	ID                 uint   `gorm:"primaryKey" json:"id"`
	ServiceAgreementID uint   `gorm:"index;not null" json:"agreement_id"`
	SLA                string `gorm:"size:300;not null" json:"sla"`
	Timescale          string `gorm:"size:200;not null" json:"timescale"`
}

// AgreementVersion is immutable once created; rows are only ever appended
// by the ledger and removed by cascade.
type AgreementVersion struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	ServiceAgreementID uint      `gorm:"not null;uniqueIndex:uq_agreement_version" json:"agreement_id"`
	VersionNumber      int       `gorm:"not null;uniqueIndex:uq_agreement_version" json:"version_number"`
	Title              string    `gorm:"size:200" json:"title"`
	DataJSON           string    `gorm:"type:text;not null" json:"-"`
	SLAItemsJSON       string    `gorm:"type:text;not null" json:"-"`
	CreatedAt          time.Time `json:"created_at"`
	CreatedByUserID    *uint     `json:"created_by_user_id"`

	CreatedByUser *User                     `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	Comments      []AgreementVersionComment `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type AgreementVersionComment struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	AgreementVersionID uint      `gorm:"index;not null" json:"agreement_version_id"`
	FieldKey           string    `gorm:"size:200;not null" json:"field_key"`
	Comment            string    `gorm:"type:text;not null" json:"comment"`
	Mentions           []string  `gorm:"serializer:json" json:"mentions"`
	Implemented        bool      `gorm:"default:false" json:"implemented"`
	LikeCount          int       `gorm:"default:0;not null" json:"like_count"`
	DislikeCount       int       `gorm:"default:0;not null" json:"dislike_count"`
	CreatedAt          time.Time `json:"created_at"`
	CreatedByUserID    *uint     `json:"created_by_user_id"`

	CreatedByUser *User                      `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	Reactions     []AgreementCommentReaction `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"-"`
}

type AgreementCommentReaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CommentID uint      `gorm:"not null;uniqueIndex:uq_agreement_comment_user" json:"comment_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:uq_agreement_comment_user" json:"user_id"`
	Reaction  string    `gorm:"size:10;not null" json:"reaction"` // like|dislike
	CreatedAt time.Time `json:"created_at"`
}
