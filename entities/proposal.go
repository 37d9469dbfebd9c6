package entities

import "time"

type Proposal struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	DisplayID string `gorm:"size:30;uniqueIndex" json:"display_id"`
	ClientID  uint   `gorm:"index;not null" json:"client_id"`

	Title       string     `gorm:"size:200;not null" json:"title"`
	Status      string     `gorm:"size:50;default:draft" json:"status"`
	SubmittedOn *time.Time `json:"submitted_on"`
	ValidUntil  *time.Time `json:"valid_until"`
	Summary     string     `gorm:"type:text" json:"summary"`
	Approach    string     `gorm:"type:text" json:"approach"`
	Timeline    string     `gorm:"type:text" json:"timeline"`
	Content     string     `gorm:"type:text" json:"content"`
	CreatedAt   time.Time  `json:"created_at"`

	CurrentVersion  int        `gorm:"default:0" json:"current_version"`
	UpdatedAt       *time.Time `json:"updated_at"`
	UpdatedByUserID *uint      `json:"updated_by_user_id"`

	UpdatedByUser *User                 `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	Requirements  []ProposalRequirement `gorm:"constraint:OnDelete:CASCADE" json:"requirements"`
	Attachments   []ProposalAttachment  `gorm:"constraint:OnDelete:CASCADE" json:"attachments"`
	Versions      []ProposalVersion     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type ProposalRequirement struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	ProposalID  uint   `gorm:"index;not null" json:"proposal_id"`
	Description string `gorm:"size:500;not null" json:"description"`
}

type ProposalAttachment struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	ProposalID uint   `gorm:"index;not null" json:"proposal_id"`
	Filename   string `gorm:"size:300;not null" json:"filename"`
	FilePath   string `gorm:"size:500;not null" json:"file_path"`
}

// ProposalVersion mirrors AgreementVersion but carries the proposal status
// at snapshot time and two collection blobs.
type ProposalVersion struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	ProposalID       uint      `gorm:"not null;uniqueIndex:uq_proposal_version" json:"proposal_id"`
	VersionNumber    int       `gorm:"not null;uniqueIndex:uq_proposal_version" json:"version_number"`
	Title            string    `gorm:"size:200" json:"title"`
	Status           string    `gorm:"size:50" json:"status"`
	DataJSON         string    `gorm:"type:text;not null" json:"-"`
	RequirementsJSON string    `gorm:"type:text;not null" json:"-"`
	AttachmentsJSON  string    `gorm:"type:text;not null" json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	CreatedByUserID  *uint     `json:"created_by_user_id"`

	CreatedByUser *User                    `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	Comments      []ProposalVersionComment `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type ProposalVersionComment struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	ProposalVersionID uint      `gorm:"index;not null" json:"proposal_version_id"`
	FieldKey          string    `gorm:"size:200;not null" json:"field_key"`
	Comment           string    `gorm:"type:text;not null" json:"comment"`
	Mentions          []string  `gorm:"serializer:json" json:"mentions"`
	Implemented       bool      `gorm:"default:false" json:"implemented"`
	LikeCount         int       `gorm:"default:0;not null" json:"like_count"`
	DislikeCount      int       `gorm:"default:0;not null" json:"dislike_count"`
	CreatedAt         time.Time `json:"created_at"`
	CreatedByUserID   *uint     `json:"created_by_user_id"`

	CreatedByUser *User                     `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	Reactions     []ProposalCommentReaction `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"-"`
}

type ProposalCommentReaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CommentID uint      `gorm:"not null;uniqueIndex:uq_proposal_comment_user" json:"comment_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:uq_proposal_comment_user" json:"user_id"`
	Reaction  string    `gorm:"size:10;not null" json:"reaction"`
	CreatedAt time.Time `json:"created_at"`
}
