package versioning

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

const (
	ReactionLike    = "like"
	ReactionDislike = "dislike"
)

// VersionSummary is the list-view shape of one ledger entry.
type VersionSummary struct {
	ID             uint      `json:"id"`
	VersionNumber  int       `json:"version_number"`
	Title          string    `json:"title"`
	Status         string    `json:"status,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	CreatedByEmail string    `json:"created_by_email,omitempty"`
	IsCurrent      bool      `json:"is_current"`
}

// CommentView is a comment with its read-time derived fields: the owning
// version's number and whether that version is still the entity's current
// one. The flag changes retroactively as new versions are appended.
type CommentView struct {
	ID             uint      `json:"id"`
	VersionID      uint      `json:"version_id"`
	FieldKey       string    `json:"field_key"`
	Comment        string    `json:"comment"`
	Mentions       []string  `json:"mentions"`
	Implemented    bool      `json:"implemented"`
	VersionNumber  int       `json:"version_number"`
	IsCurrent      bool      `json:"is_current"`
	CreatedAt      time.Time `json:"created_at"`
	CreatedByEmail string    `json:"created_by_email,omitempty"`
	LikeCount      int       `json:"like_count"`
	DislikeCount   int       `json:"dislike_count"`
}

// ThreadSchema parameterizes comment threads and reactions for one entity
// variant. C is the comment row, R the reaction row. Reaction tables share
// their column names (comment_id, user_id, reaction) across variants, so
// only construction and the version lookup differ.
type ThreadSchema[C any, R any] struct {
	VersionExists func(tx *gorm.DB, versionID uint) error
	NewComment    func(versionID uint, fieldKey, body string, mentions []string, at time.Time, actorID *uint) *C
	NewReaction   func(commentID, userID uint, value string, at time.Time) *R
	ReactionValue func(r *R) string
}

// Thread attaches field-scoped discussion to versions and enforces the
// one-reaction-per-user rule with consistent aggregate counts.
type Thread[C any, R any] struct {
	db     *gorm.DB
	schema ThreadSchema[C, R]
}

func NewThread[C any, R any](db *gorm.DB, schema ThreadSchema[C, R]) *Thread[C, R] {
	return &Thread[C, R]{db: db, schema: schema}
}

// AddComment creates a comment on a version. Bodies may arrive as rich-text
// HTML and are stored stripped to plain text; mentions are soft references
// and are not validated against the user table.
func (t *Thread[C, R]) AddComment(versionID uint, fieldKey, body string, mentions []string, actorID *uint) (*C, error) {
	fieldKey = strings.TrimSpace(fieldKey)
	body = StripHTML(strings.TrimSpace(body))
	if fieldKey == "" || body == "" {
		return nil, ErrInvalidArgument
	}
	var created *C
	err := t.db.Transaction(func(tx *gorm.DB) error {
		if err := t.schema.VersionExists(tx, versionID); err != nil {
			return translateStoreErr(err)
		}
		c := t.schema.NewComment(versionID, fieldKey, body, mentions, time.Now().UTC(), actorID)
		if err := tx.Create(c).Error; err != nil {
			return translateStoreErr(err)
		}
		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// SetImplemented flips the comment's implemented flag. No side effects on
// counts or version state.
func (t *Thread[C, R]) SetImplemented(commentID uint, value bool) (*C, error) {
	var c C
	if err := t.db.First(&c, commentID).Error; err != nil {
		return nil, translateStoreErr(err)
	}
	if err := t.db.Model(&c).Update("implemented", value).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// React records user's like/dislike on a comment. A repeat of the same
// value toggles it off, a different value replaces it; the comment's cached
// counts are recomputed from the reaction rows in the same transaction so
// they can never drift.
func (t *Thread[C, R]) React(commentID, userID uint, value string) (*C, error) {
	if value != ReactionLike && value != ReactionDislike {
		return nil, ErrInvalidArgument
	}
	var updated *C
	err := t.db.Transaction(func(tx *gorm.DB) error {
		var c C
		if err := tx.First(&c, commentID).Error; err != nil {
			return translateStoreErr(err)
		}

		var existing R
		err := tx.Where("comment_id = ? AND user_id = ?", commentID, userID).First(&existing).Error
		switch {
		case err == nil:
			if t.schema.ReactionValue(&existing) == value {
				if err := tx.Delete(&existing).Error; err != nil {
					return err
				}
			} else {
				if err := tx.Model(&existing).Update("reaction", value).Error; err != nil {
					return err
				}
			}
		case isNotFound(err):
			r := t.schema.NewReaction(commentID, userID, value, time.Now().UTC())
			if err := tx.Create(r).Error; err != nil {
				return translateStoreErr(err)
			}
		default:
			return err
		}

		var likes, dislikes int64
		if err := tx.Model(new(R)).Where("comment_id = ? AND reaction = ?", commentID, ReactionLike).Count(&likes).Error; err != nil {
			return err
		}
		if err := tx.Model(new(R)).Where("comment_id = ? AND reaction = ?", commentID, ReactionDislike).Count(&dislikes).Error; err != nil {
			return err
		}
		if err := tx.Model(&c).Updates(map[string]any{
			"like_count":    likes,
			"dislike_count": dislikes,
		}).Error; err != nil {
			return err
		}
		if err := tx.First(&c, commentID).Error; err != nil {
			return err
		}
		updated = &c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func isNotFound(err error) bool {
	return translateStoreErr(err) == ErrNotFound
}
