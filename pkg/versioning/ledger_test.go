package versioning

import (
	"sync"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// The ledger is exercised here against a minimal local entity pair rather
// than a production one, so the tests cover the engine contract alone.

type note struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Title           string     `json:"title"`
	Body            string     `json:"body"`
	SignedOn        *time.Time `json:"signed_on"`
	CurrentVersion  int        `gorm:"default:0" json:"current_version"`
	UpdatedAt       *time.Time `json:"updated_at"`
	UpdatedByUserID *uint      `json:"updated_by_user_id"`

	Items []noteItem `json:"items"`
}

type noteItem struct {
	ID     uint   `gorm:"primaryKey" json:"-"`
	NoteID uint   `gorm:"index;not null" json:"-"`
	Label  string `json:"label"`
}

type noteVersion struct {
	ID              uint   `gorm:"primaryKey"`
	NoteID          uint   `gorm:"not null;uniqueIndex:uq_note_version"`
	VersionNumber   int    `gorm:"not null;uniqueIndex:uq_note_version"`
	Title           string
	DataJSON        string `gorm:"type:text;not null"`
	ItemsJSON       string `gorm:"type:text;not null"`
	CreatedAt       time.Time
	CreatedByUserID *uint
}

type noteComment struct {
	ID              uint     `gorm:"primaryKey"`
	NoteVersionID   uint     `gorm:"index;not null"`
	FieldKey        string
	Comment         string
	Mentions        []string `gorm:"serializer:json"`
	Implemented     bool     `gorm:"default:false"`
	LikeCount       int      `gorm:"default:0;not null"`
	DislikeCount    int      `gorm:"default:0;not null"`
	CreatedAt       time.Time
	CreatedByUserID *uint
}

type noteReaction struct {
	ID        uint   `gorm:"primaryKey"`
	CommentID uint   `gorm:"not null;uniqueIndex:uq_note_comment_user"`
	UserID    uint   `gorm:"not null;uniqueIndex:uq_note_comment_user"`
	Reaction  string `gorm:"size:10;not null"`
	CreatedAt time.Time
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	// Every pooled connection to a plain ":memory:" DSN gets its own empty
	// database, so cap the pool at one connection to keep a single schema.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&note{}, &noteItem{}, &noteVersion{}, &noteComment{}, &noteReaction{}))
	return db
}

func noteSchema() Schema[note, noteVersion] {
	return Schema[note, noteVersion]{
		OwnerColumn: "note_id",
		ExcludedFields: []string{
			"id", "current_version", "updated_at", "updated_by_user_id", "items",
		},
		Collections: []Collection[note]{{
			Name: "items",
			Capture: func(e *note) (string, error) {
				return CaptureCollection(e.Items)
			},
			Replace: func(tx *gorm.DB, e *note, blob string) error {
				items, err := DecodeCollection[noteItem](blob)
				if err != nil {
					return err
				}
				if err := tx.Where("note_id = ?", e.ID).Delete(&noteItem{}).Error; err != nil {
					return err
				}
				for i := range items {
					items[i].ID = 0
					items[i].NoteID = e.ID
				}
				if len(items) > 0 {
					if err := tx.Create(&items).Error; err != nil {
						return err
					}
				}
				e.Items = items
				return nil
			},
		}},
		ID: func(e *note) uint { return e.ID },
		SetCurrent: func(e *note, version int, at time.Time, actorID *uint) {
			e.CurrentVersion = version
			e.UpdatedAt = &at
			e.UpdatedByUserID = actorID
		},
		NewVersion: func(e *note, version int, snap Snapshot, at time.Time, actorID *uint) *noteVersion {
			return &noteVersion{
				NoteID:          e.ID,
				VersionNumber:   version,
				Title:           e.Title,
				DataJSON:        snap.Data,
				ItemsJSON:       snap.Collections["items"],
				CreatedAt:       at,
				CreatedByUserID: actorID,
			}
		},
		Snapshot: func(v *noteVersion) Snapshot {
			return Snapshot{
				Data:        v.DataJSON,
				Collections: map[string]string{"items": v.ItemsJSON},
			}
		},
	}
}

func noteThreadSchema() ThreadSchema[noteComment, noteReaction] {
	return ThreadSchema[noteComment, noteReaction]{
		VersionExists: func(tx *gorm.DB, versionID uint) error {
			var v noteVersion
			return tx.Select("id").First(&v, versionID).Error
		},
		NewComment: func(versionID uint, fieldKey, body string, mentions []string, at time.Time, actorID *uint) *noteComment {
			return &noteComment{
				NoteVersionID:   versionID,
				FieldKey:        fieldKey,
				Comment:         body,
				Mentions:        mentions,
				CreatedAt:       at,
				CreatedByUserID: actorID,
			}
		},
		NewReaction: func(commentID, userID uint, value string, at time.Time) *noteReaction {
			return &noteReaction{CommentID: commentID, UserID: userID, Reaction: value, CreatedAt: at}
		},
		ReactionValue: func(r *noteReaction) string { return r.Reaction },
	}
}

func TestAppendAssignsContiguousNumbers(t *testing.T) {
	db := openTestDB(t)
	ledger := NewLedger(db, noteSchema())

	n := &note{Title: "first", Body: "body"}
	require.NoError(t, db.Create(n).Error)

	v1, err := ledger.Append(n, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, v1.VersionNumber)
	assert.Equal(t, 1, n.CurrentVersion)
	assert.NotNil(t, n.UpdatedAt)

	n.Title = "second"
	v2, err := ledger.Append(n, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, v2.VersionNumber)
	assert.Equal(t, 2, n.CurrentVersion)
	assert.Equal(t, "second", v2.Title)

	var count int64
	require.NoError(t, db.Model(&noteVersion{}).Where("note_id = ?", n.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestAppendUnsavedEntityIsInvalidState(t *testing.T) {
	db := openTestDB(t)
	ledger := NewLedger(db, noteSchema())

	_, err := ledger.Append(&note{Title: "ghost"}, nil)
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = ledger.Append(&note{ID: 999, Title: "gone"}, nil)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestAppendConcurrentNumbersStayContiguous(t *testing.T) {
	db := openTestDB(t)
	ledger := NewLedger(db, noteSchema())

	n := &note{Title: "base"}
	require.NoError(t, db.Create(n).Error)

	// Competing appends on one entity must never mint the same number: the
	// in-transaction counter read hands out distinct numbers, and the
	// (owner, version_number) unique index turns any race loser into a
	// Conflict instead of a duplicate row.
	const writers = 6
	errs := make(chan error, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := *n
			_, err := ledger.Append(&local, nil)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, ErrConflict)
			continue
		}
		succeeded++
	}
	require.Positive(t, succeeded)

	var versions []noteVersion
	require.NoError(t, db.Where("note_id = ?", n.ID).
		Order("version_number ASC").Find(&versions).Error)
	require.Len(t, versions, succeeded)
	for i, v := range versions {
		assert.Equal(t, i+1, v.VersionNumber)
	}

	var head note
	require.NoError(t, db.First(&head, n.ID).Error)
	assert.Equal(t, succeeded, head.CurrentVersion)
}

func TestRestoreExtendsHistory(t *testing.T) {
	db := openTestDB(t)
	ledger := NewLedger(db, noteSchema())

	signed := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	n := &note{Title: "first", Body: "original", SignedOn: &signed,
		Items: []noteItem{{Label: "uptime"}}}
	require.NoError(t, db.Create(n).Error)
	_, err := ledger.Append(n, nil)
	require.NoError(t, err)

	n.Title = "second"
	n.Body = "edited"
	n.SignedOn = nil
	require.NoError(t, db.Where("note_id = ?", n.ID).Delete(&noteItem{}).Error)
	n.Items = []noteItem{{NoteID: n.ID, Label: "response"}}
	require.NoError(t, db.Create(&n.Items).Error)
	_, err = ledger.Append(n, nil)
	require.NoError(t, err)

	v3, err := ledger.Restore(n, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, v3.VersionNumber)
	assert.Equal(t, 3, n.CurrentVersion)
	assert.Equal(t, "first", n.Title)
	assert.Equal(t, "original", n.Body)
	require.NotNil(t, n.SignedOn)
	assert.True(t, signed.Equal(*n.SignedOn))
	require.Len(t, n.Items, 1)
	assert.Equal(t, "uptime", n.Items[0].Label)

	// The intermediate version survives the restore.
	v2, err := ledger.Version(n.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, "second", v2.Title)

	var count int64
	require.NoError(t, db.Model(&noteVersion{}).Where("note_id = ?", n.ID).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestRestoreUnknownVersionIsNotFound(t *testing.T) {
	db := openTestDB(t)
	ledger := NewLedger(db, noteSchema())

	n := &note{Title: "only"}
	require.NoError(t, db.Create(n).Error)
	_, err := ledger.Append(n, nil)
	require.NoError(t, err)

	_, err = ledger.Restore(n, 9, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVersionIsScopedToOwner(t *testing.T) {
	db := openTestDB(t)
	ledger := NewLedger(db, noteSchema())

	a := &note{Title: "a"}
	b := &note{Title: "b"}
	require.NoError(t, db.Create(a).Error)
	require.NoError(t, db.Create(b).Error)
	_, err := ledger.Append(a, nil)
	require.NoError(t, err)

	// b never produced version 1; a's row must not leak across.
	_, err = ledger.Version(b.ID, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}
