package entities

// Settings is a single-row table holding company-wide document numbering.
type Settings struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	CompanyName     string `gorm:"size:200;default:Your Company" json:"company_name"`
	AgreementPrefix string `gorm:"size:20;default:AGR" json:"agreement_prefix"`
	ProposalPrefix  string `gorm:"size:20;default:PROP" json:"proposal_prefix"`
}
