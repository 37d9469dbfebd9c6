package serviceImp

import (
	"encoding/json"
	"strings"

	"gorm.io/gorm"

	"github.com/lcorrigan704/client-management-system/entities"
	"github.com/lcorrigan704/client-management-system/pkg/numbering"
	"github.com/lcorrigan704/client-management-system/pkg/proposal/repository"
	"github.com/lcorrigan704/client-management-system/pkg/proposal/service"
	"github.com/lcorrigan704/client-management-system/pkg/versioning"
)

type proposalService struct {
	db     *gorm.DB
	repo   repository.ProposalRepository
	ledger *versioning.Ledger[entities.Proposal, entities.ProposalVersion]
	thread *versioning.Thread[entities.ProposalVersionComment, entities.ProposalCommentReaction]
}

func New(db *gorm.DB, repo repository.ProposalRepository) service.ProposalService {
	return &proposalService{
		db:     db,
		repo:   repo,
		ledger: versioning.NewLedger(db, ledgerSchema()),
		thread: versioning.NewThread(db, threadSchema()),
	}
}

func (s *proposalService) Create(clientID uint, in service.ProposalInput, actorID *uint) (*service.ProposalOut, *entities.ProposalVersion, error) {
	if in.Title == nil || strings.TrimSpace(*in.Title) == "" {
		return nil, nil, versioning.ErrInvalidArgument
	}
	p := &entities.Proposal{ClientID: clientID, Status: "draft"}
	applyInput(p, in)
	if in.Requirements != nil {
		for _, item := range *in.Requirements {
			p.Requirements = append(p.Requirements, entities.ProposalRequirement{Description: item.Description})
		}
	}
	if in.Attachments != nil {
		for _, item := range *in.Attachments {
			p.Attachments = append(p.Attachments, entities.ProposalAttachment{
				Filename: item.Filename, FilePath: item.FilePath,
			})
		}
	}

	var v *entities.ProposalVersion
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		if p.DisplayID == "" {
			settings, err := numbering.Get(tx)
			if err != nil {
				return err
			}
			p.DisplayID = numbering.DisplayID(settings.ProposalPrefix, p.ID)
		}
		nv, err := s.ledger.AppendIn(tx, p, actorID)
		v = nv
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return s.out(p), v, nil
}

func (s *proposalService) Update(id uint, in service.ProposalInput, actorID *uint) (*service.ProposalOut, *entities.ProposalVersion, error) {
	p, err := s.repo.Get(id)
	if err != nil {
		return nil, nil, err
	}
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return nil, nil, versioning.ErrInvalidArgument
	}
	applyInput(p, in)

	var v *entities.ProposalVersion
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if in.Requirements != nil {
			if err := replaceRequirements(tx, p, *in.Requirements); err != nil {
				return err
			}
		}
		if in.Attachments != nil {
			if err := replaceAttachments(tx, p, *in.Attachments); err != nil {
				return err
			}
		}
		nv, err := s.ledger.AppendIn(tx, p, actorID)
		v = nv
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return s.out(p), v, nil
}

func (s *proposalService) Get(id uint) (*service.ProposalOut, error) {
	p, err := s.repo.Get(id)
	if err != nil {
		return nil, err
	}
	return s.out(p), nil
}

func (s *proposalService) List() ([]service.ProposalOut, error) {
	rows, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]service.ProposalOut, 0, len(rows))
	for i := range rows {
		out = append(out, *s.out(&rows[i]))
	}
	return out, nil
}

func (s *proposalService) Delete(id uint) error {
	return s.repo.Delete(id)
}

func (s *proposalService) Versions(id uint) ([]versioning.VersionSummary, error) {
	p, err := s.repo.Get(id)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.Versions(p.ID)
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
			Status:         v.Status,
			CreatedAt:      v.CreatedAt,
			CreatedByEmail: userEmail(v.CreatedByUser),
			IsCurrent:      v.VersionNumber == p.CurrentVersion,
		})
	}
	return out, nil
}

func (s *proposalService) VersionDetail(id uint, number int) (*service.VersionDetail, error) {
	p, err := s.repo.Get(id)
	if err != nil {
		return nil, err
	}
	v, err := s.ledger.Version(p.ID, number)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal([]byte(v.DataJSON), &fields); err != nil {
		return nil, err
	}
	requirements, err := versioning.DecodeCollection[service.RequirementInput](v.RequirementsJSON)
	if err != nil {
		return nil, err
	}
	attachments, err := versioning.DecodeCollection[service.AttachmentInput](v.AttachmentsJSON)
	if err != nil {
		return nil, err
	}
	return &service.VersionDetail{
		VersionSummary: versioning.VersionSummary{
			ID:             v.ID,
			VersionNumber:  v.VersionNumber,
			Title:          v.Title,
			Status:         v.Status,
			CreatedAt:      v.CreatedAt,
			CreatedByEmail: s.email(v.CreatedByUserID),
			IsCurrent:      v.VersionNumber == p.CurrentVersion,
		},
		Fields:       fields,
		Requirements: requirements,
		Attachments:  attachments,
	}, nil
}

func (s *proposalService) RestoreVersion(id uint, number int, actorID *uint) (*service.ProposalOut, *entities.ProposalVersion, error) {
	p, err := s.repo.Get(id)
	if err != nil {
		return nil, nil, err
	}
	v, err := s.ledger.Restore(p, number, actorID)
	if err != nil {
		return nil, nil, err
	}
	return s.out(p), v, nil
}

func (s *proposalService) Comments(id uint) ([]versioning.CommentView, error) {
	p, err := s.repo.Get(id)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.Versions(p.ID)
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
		out = append(out, s.view(c, numbers[c.ProposalVersionID], p.CurrentVersion, userEmail(c.CreatedByUser)))
	}
	return out, nil
}

func (s *proposalService) VersionComments(id uint, number int) ([]versioning.CommentView, error) {
	p, err := s.repo.Get(id)
	if err != nil {
		return nil, err
	}
	v, err := s.ledger.Version(p.ID, number)
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
		out = append(out, s.view(c, number, p.CurrentVersion, userEmail(c.CreatedByUser)))
	}
	return out, nil
}

func (s *proposalService) AddComment(id uint, number int, fieldKey, body string, mentions []string, actorID *uint) (*versioning.CommentView, error) {
	p, err := s.repo.Get(id)
	if err != nil {
		return nil, err
	}
	v, err := s.ledger.Version(p.ID, number)
	if err != nil {
		return nil, err
	}
	c, err := s.thread.AddComment(v.ID, fieldKey, body, mentions, actorID)
	if err != nil {
		return nil, err
	}
	view := s.view(c, number, p.CurrentVersion, s.email(c.CreatedByUserID))
	return &view, nil
}

func (s *proposalService) SetCommentImplemented(commentID uint, value bool) (*versioning.CommentView, error) {
	c, err := s.thread.SetImplemented(commentID, value)
	if err != nil {
		return nil, err
	}
	return s.viewOf(c)
}

func (s *proposalService) React(commentID, userID uint, value string) (*versioning.CommentView, error) {
	c, err := s.thread.React(commentID, userID, value)
	if err != nil {
		return nil, err
	}
	return s.viewOf(c)
}

func (s *proposalService) viewOf(c *entities.ProposalVersionComment) (*versioning.CommentView, error) {
	var v entities.ProposalVersion
	if err := s.db.First(&v, c.ProposalVersionID).Error; err != nil {
		return nil, err
	}
	var p entities.Proposal
	if err := s.db.First(&p, v.ProposalID).Error; err != nil {
		return nil, err
	}
	view := s.view(c, v.VersionNumber, p.CurrentVersion, s.email(c.CreatedByUserID))
	return &view, nil
}

func (s *proposalService) view(c *entities.ProposalVersionComment, number, current int, email string) versioning.CommentView {
	mentions := c.Mentions
	if mentions == nil {
		mentions = []string{}
	}
	return versioning.CommentView{
		ID:             c.ID,
		VersionID:      c.ProposalVersionID,
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

func (s *proposalService) out(p *entities.Proposal) *service.ProposalOut {
	return &service.ProposalOut{
		Proposal:       *p,
		UpdatedByEmail: userEmail(p.UpdatedByUser),
	}
}

func (s *proposalService) email(id *uint) string {
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

func applyInput(p *entities.Proposal, in service.ProposalInput) {
	if in.DisplayID != nil {
		p.DisplayID = strings.TrimSpace(*in.DisplayID)
	}
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Status != nil && *in.Status != "" {
		p.Status = *in.Status
	}
	if in.SubmittedOn != nil {
		p.SubmittedOn = in.SubmittedOn
	}
	if in.ValidUntil != nil {
		p.ValidUntil = in.ValidUntil
	}
	if in.Summary != nil {
		p.Summary = *in.Summary
	}
	if in.Approach != nil {
		p.Approach = *in.Approach
	}
	if in.Timeline != nil {
		p.Timeline = *in.Timeline
	}
	if in.Content != nil {
		p.Content = *in.Content
	}
}
