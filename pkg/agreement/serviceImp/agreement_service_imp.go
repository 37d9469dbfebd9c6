package serviceImp

import (
	"encoding/json"
	"strings"

	"gorm.io/gorm"

	"github.com/lcorrigan704/client-management-system/entities"
	"github.com/lcorrigan704/client-management-system/pkg/agreement/repository"
	"github.com/lcorrigan704/client-management-system/pkg/agreement/service"
	"github.com/lcorrigan704/client-management-system/pkg/numbering"
	"github.com/lcorrigan704/client-management-system/pkg/versioning"
)

type agreementService struct {
	db     *gorm.DB
	repo   repository.AgreementRepository
	ledger *versioning.Ledger[entities.ServiceAgreement, entities.AgreementVersion]
	thread *versioning.Thread[entities.AgreementVersionComment, entities.AgreementCommentReaction]
}

func New(db *gorm.DB, repo repository.AgreementRepository) service.AgreementService {
	return &agreementService{
		db:     db,
		repo:   repo,
		ledger: versioning.NewLedger(db, ledgerSchema()),
		thread: versioning.NewThread(db, threadSchema()),
	}
}

func (s *agreementService) Create(clientID uint, in service.AgreementInput, actorID *uint) (*service.AgreementOut, *entities.AgreementVersion, error) {
	if in.Title == nil || strings.TrimSpace(*in.Title) == "" {
		return nil, nil, versioning.ErrInvalidArgument
	}
	a := &entities.ServiceAgreement{ClientID: clientID}
	applyInput(a, in)
	if in.SLAItems != nil {
		for _, item := range *in.SLAItems {
			a.SLAItems = append(a.SLAItems, entities.ServiceAgreementSLA{
				SLA: item.SLA, Timescale: item.Timescale,
			})
		}
	}

	var v *entities.AgreementVersion
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(a).Error; err != nil {
			return err
		}
		if a.DisplayID == "" {
			settings, err := numbering.Get(tx)
			if err != nil {
				return err
			}
			a.DisplayID = numbering.DisplayID(settings.AgreementPrefix, a.ID)
		}
		// current_version starts at 0, so this seeds version 1 as the
		// agreement's baseline.
		nv, err := s.ledger.AppendIn(tx, a, actorID)
		v = nv
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return s.out(a), v, nil
}

func (s *agreementService) Update(id uint, in service.AgreementInput, actorID *uint) (*service.AgreementOut, *entities.AgreementVersion, error) {
	a, err := s.repo.Get(id)
	if err != nil {
		return nil, nil, err
	}
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return nil, nil, versioning.ErrInvalidArgument
	}
	applyInput(a, in)

	var v *entities.AgreementVersion
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if in.SLAItems != nil {
			if err := replaceSLAItems(tx, a, *in.SLAItems); err != nil {
				return err
			}
		}
		nv, err := s.ledger.AppendIn(tx, a, actorID)
		v = nv
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return s.out(a), v, nil
}

func (s *agreementService) Get(id uint) (*service.AgreementOut, error) {
	a, err := s.repo.Get(id)
	if err != nil {
		return nil, err
	}
	return s.out(a), nil
}

func (s *agreementService) List() ([]service.AgreementOut, error) {
	rows, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]service.AgreementOut, 0, len(rows))
	for i := range rows {
		out = append(out, *s.out(&rows[i]))
	}
	return out, nil
}

func (s *agreementService) Delete(id uint) error {
	return s.repo.Delete(id)
}

func (s *agreementService) Versions(id uint) ([]versioning.VersionSummary, error) {
	a, err := s.repo.Get(id)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.Versions(a.ID)
	if err != nil {
		return nil, err
	}
	out := make([]versioning.VersionSummary, 0, len(rows))
	for i := range rows {
		v := &rows[i]
		out = append(out, versioning.VersionSummary{
			ID:             v.ID,
			VersionNumber:  v.VersionNumber,
			Title:          v.Title,
			CreatedAt:      v.CreatedAt,
			CreatedByEmail: userEmail(v.CreatedByUser),
			IsCurrent:      v.VersionNumber == a.CurrentVersion,
		})
	}
	return out, nil
}

func (s *agreementService) VersionDetail(id uint, number int) (*service.VersionDetail, error) {
	a, err := s.repo.Get(id)
	if err != nil {
		return nil, err
	}
	v, err := s.ledger.Version(a.ID, number)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal([]byte(v.DataJSON), &fields); err != nil {
		return nil, err
	}
	items, err := versioning.DecodeCollection[service.SLAItemInput](v.SLAItemsJSON)
	if err != nil {
		return nil, err
	}
	return &service.VersionDetail{
		VersionSummary: versioning.VersionSummary{
			ID:             v.ID,
			VersionNumber:  v.VersionNumber,
			Title:          v.Title,
			CreatedAt:      v.CreatedAt,
			CreatedByEmail: s.email(v.CreatedByUserID),
			IsCurrent:      v.VersionNumber == a.CurrentVersion,
		},
		Fields:   fields,
		SLAItems: items,
	}, nil
}

func (s *agreementService) RestoreVersion(id uint, number int, actorID *uint) (*service.AgreementOut, *entities.AgreementVersion, error) {
	a, err := s.repo.Get(id)
	if err != nil {
		return nil, nil, err
	}
	v, err := s.ledger.Restore(a, number, actorID)
	if err != nil {
		return nil, nil, err
	}
	return s.out(a), v, nil
}

func (s *agreementService) Comments(id uint) ([]versioning.CommentView, error) {
	a, err := s.repo.Get(id)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.Versions(a.ID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(rows))
	numbers := make(map[uint]int, len(rows))
	for _, v := range rows {
		ids = append(ids, v.ID)
		numbers[v.ID] = v.VersionNumber
	}
	comments, err := s.repo.CommentsForVersions(ids)
	if err != nil {
		return nil, err
	}
	out := make([]versioning.CommentView, 0, len(comments))
	for i := range comments {
		c := &comments[i]
		out = append(out, s.view(c, numbers[c.AgreementVersionID], a.CurrentVersion, userEmail(c.CreatedByUser)))
	}
	return out, nil
}

func (s *agreementService) VersionComments(id uint, number int) ([]versioning.CommentView, error) {
	a, err := s.repo.Get(id)
	if err != nil {
		return nil, err
	}
	v, err := s.ledger.Version(a.ID, number)
	if err != nil {
		return nil, err
	}
	comments, err := s.repo.CommentsForVersions([]uint{v.ID})
	if err != nil {
		return nil, err
	}
	out := make([]versioning.CommentView, 0, len(comments))
	for i := range comments {
		c := &comments[i]
		out = append(out, s.view(c, number, a.CurrentVersion, userEmail(c.CreatedByUser)))
	}
	return out, nil
}

func (s *agreementService) AddComment(id uint, number int, fieldKey, body string, mentions []string, actorID *uint) (*versioning.CommentView, error) {
	a, err := s.repo.Get(id)
	if err != nil {
		return nil, err
	}
	v, err := s.ledger.Version(a.ID, number)
	if err != nil {
		return nil, err
	}
	c, err := s.thread.AddComment(v.ID, fieldKey, body, mentions, actorID)
	if err != nil {
		return nil, err
	}
	view := s.view(c, number, a.CurrentVersion, s.email(c.CreatedByUserID))
	return &view, nil
}

func (s *agreementService) SetCommentImplemented(commentID uint, value bool) (*versioning.CommentView, error) {
	c, err := s.thread.SetImplemented(commentID, value)
	if err != nil {
		return nil, err
	}
	return s.viewOf(c)
}

func (s *agreementService) React(commentID, userID uint, value string) (*versioning.CommentView, error) {
	c, err := s.thread.React(commentID, userID, value)
	if err != nil {
		return nil, err
	}
	return s.viewOf(c)
}

// viewOf derives a single comment's version number and is_current flag by
// walking back up to the owning agreement.
func (s *agreementService) viewOf(c *entities.AgreementVersionComment) (*versioning.CommentView, error) {
	var v entities.AgreementVersion
	if err := s.db.First(&v, c.AgreementVersionID).Error; err != nil {
		return nil, err
	}
	var a entities.ServiceAgreement
	if err := s.db.First(&a, v.ServiceAgreementID).Error; err != nil {
		return nil, err
	}
	view := s.view(c, v.VersionNumber, a.CurrentVersion, s.email(c.CreatedByUserID))
	return &view, nil
}

func (s *agreementService) view(c *entities.AgreementVersionComment, number, current int, email string) versioning.CommentView {
	mentions := c.Mentions
	if mentions == nil {
		mentions = []string{}
	}
	return versioning.CommentView{
		ID:             c.ID,
		VersionID:      c.AgreementVersionID,
		FieldKey:       c.FieldKey,
		Comment:        c.Comment,
		Mentions:       mentions,
		Implemented:    c.Implemented,
		VersionNumber:  number,
		IsCurrent:      number == current,
		CreatedAt:      c.CreatedAt,
		CreatedByEmail: email,
		LikeCount:      c.LikeCount,
		DislikeCount:   c.DislikeCount,
	}
}

func (s *agreementService) out(a *entities.ServiceAgreement) *service.AgreementOut {
	return &service.AgreementOut{
		ServiceAgreement: *a,
		UpdatedByEmail:   userEmail(a.UpdatedByUser),
	}
}

func (s *agreementService) email(id *uint) string {
	if id == nil {
		return ""
	}
	var u entities.User
	if err := s.db.First(&u, *id).Error; err != nil {
		return ""
	}
	return u.Email
}

func userEmail(u *entities.User) string {
	if u == nil {
		return ""
	}
	return u.Email
}

func applyInput(a *entities.ServiceAgreement, in service.AgreementInput) {
	if in.DisplayID != nil {
		a.DisplayID = strings.TrimSpace(*in.DisplayID)
	}
	if in.Title != nil {
		a.Title = *in.Title
	}
	if in.Summary != nil {
		a.Summary = *in.Summary
	}
	if in.Content != nil {
		a.Content = *in.Content
	}
	if in.DocumentURL != nil {
		a.DocumentURL = *in.DocumentURL
	}
	if in.StartDate != nil {
		a.StartDate = in.StartDate
	}
	if in.EndDate != nil {
		a.EndDate = in.EndDate
	}
	if in.ScopeOfServices != nil {
		a.ScopeOfServices = *in.ScopeOfServices
	}
	if in.Duration != nil {
		a.Duration = *in.Duration
	}
	if in.Availability != nil {
		a.Availability = *in.Availability
	}
	if in.Meetings != nil {
		a.Meetings = *in.Meetings
	}
	if in.AccessRequirements != nil {
		a.AccessRequirements = *in.AccessRequirements
	}
	if in.FeesPayments != nil {
		a.FeesPayments = *in.FeesPayments
	}
	if in.DataProtection != nil {
		a.DataProtection = *in.DataProtection
	}
	if in.Termination != nil {
		a.Termination = *in.Termination
	}
	if in.CompanySignatoryName != nil {
		a.CompanySignatoryName = *in.CompanySignatoryName
	}
	if in.CompanySignatoryTitle != nil {
		a.CompanySignatoryTitle = *in.CompanySignatoryTitle
	}
	if in.CompanySignedDate != nil {
		a.CompanySignedDate = in.CompanySignedDate
	}
	if in.ClientSignatoryName != nil {
		a.ClientSignatoryName = *in.ClientSignatoryName
	}
}
