package repositoryImp

import (
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lcorrigan704/client-management-system/entities"
	agreementRepoImp "github.com/lcorrigan704/client-management-system/pkg/agreement/repositoryImp"
	agreementSvc "github.com/lcorrigan704/client-management-system/pkg/agreement/service"
	agreementSvcImp "github.com/lcorrigan704/client-management-system/pkg/agreement/serviceImp"
	proposalRepoImp "github.com/lcorrigan704/client-management-system/pkg/proposal/repositoryImp"
	proposalSvc "github.com/lcorrigan704/client-management-system/pkg/proposal/service"
	proposalSvcImp "github.com/lcorrigan704/client-management-system/pkg/proposal/serviceImp"
	"github.com/lcorrigan704/client-management-system/pkg/versioning"
)

func setup(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entities.User{}, &entities.Settings{}, &entities.Client{},
		&entities.ServiceAgreement{}, &entities.ServiceAgreementSLA{},
		&entities.AgreementVersion{}, &entities.AgreementVersionComment{},
		&entities.AgreementCommentReaction{},
		&entities.Proposal{}, &entities.ProposalRequirement{},
		&entities.ProposalAttachment{}, &entities.ProposalVersion{},
		&entities.ProposalVersionComment{}, &entities.ProposalCommentReaction{},
	))
	return db
}

func str(s string) *string { return &s }

func TestCRUD(t *testing.T) {
	db := setup(t)
	repo := New(db)

	cl := &entities.Client{Name: "Acme", Email: "hello@acme.test"}
	require.NoError(t, repo.Create(cl))
	require.NotZero(t, cl.ID)

	got, err := repo.Get(cl.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)

	got.Phone = "0123"
	require.NoError(t, repo.Update(got))
	got, err = repo.Get(cl.ID)
	require.NoError(t, err)
	assert.Equal(t, "0123", got.Phone)

	all, err := repo.List()
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = repo.Get(999)
	assert.ErrorIs(t, err, versioning.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(999), versioning.ErrNotFound)
}

func TestDeleteCascadesWholeTree(t *testing.T) {
	db := setup(t)
	repo := New(db)

	cl := &entities.Client{Name: "Acme"}
	require.NoError(t, repo.Create(cl))
	keep := &entities.Client{Name: "Other"}
	require.NoError(t, repo.Create(keep))
	u := &entities.User{Email: "author@example.com", IsActive: true}
	require.NoError(t, db.Create(u).Error)

	agreements := agreementSvcImp.New(db, agreementRepoImp.New(db))
	proposals := proposalSvcImp.New(db, proposalRepoImp.New(db))

	a, _, err := agreements.Create(cl.ID, agreementSvc.AgreementInput{
		Title:    str("Support"),
		SLAItems: &[]agreementSvc.SLAItemInput{{SLA: "uptime", Timescale: "monthly"}},
	}, &u.ID)
	require.NoError(t, err)
	ac, err := agreements.AddComment(a.ID, 1, "title", "note", nil, &u.ID)
	require.NoError(t, err)
	_, err = agreements.React(ac.ID, u.ID, versioning.ReactionLike)
	require.NoError(t, err)

	p, _, err := proposals.Create(cl.ID, proposalSvc.ProposalInput{
		Title:        str("Rebuild"),
		Requirements: &[]proposalSvc.RequirementInput{{Description: "phase one"}},
		Attachments:  &[]proposalSvc.AttachmentInput{{Filename: "f.pdf", FilePath: "/f.pdf"}},
	}, &u.ID)
	require.NoError(t, err)
	pc, err := proposals.AddComment(p.ID, 1, "summary", "note", nil, &u.ID)
	require.NoError(t, err)
	_, err = proposals.React(pc.ID, u.ID, versioning.ReactionDislike)
	require.NoError(t, err)

	kept, _, err := agreements.Create(keep.ID, agreementSvc.AgreementInput{Title: str("Keep")}, &u.ID)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(cl.ID))

	for _, model := range []any{
		&entities.ServiceAgreementSLA{}, &entities.AgreementVersionComment{},
		&entities.AgreementCommentReaction{}, &entities.ProposalRequirement{},
		&entities.ProposalAttachment{}, &entities.ProposalVersionComment{},
		&entities.ProposalCommentReaction{}, &entities.Proposal{},
		&entities.ProposalVersion{},
	} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Zero(t, count)
	}

	// The other client's agreement is untouched.
	var agrs int64
	require.NoError(t, db.Model(&entities.ServiceAgreement{}).Count(&agrs).Error)
	assert.EqualValues(t, 1, agrs)
	_, err = agreements.Get(kept.ID)
	assert.NoError(t, err)
	_, err = repo.Get(cl.ID)
	assert.ErrorIs(t, err, versioning.ErrNotFound)
}
