package versioning

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Collection describes one nested collection of a versionable entity: how
// to serialize it into a named blob and how to replace it wholesale from
// that blob during restore.
type Collection[E any] struct {
	Name    string
	Capture func(e *E) (string, error)
	Replace func(tx *gorm.DB, e *E, blob string) error
}

// Schema parameterizes the ledger for one entity variant. E is the live
// entity, V its immutable version row.
type Schema[E any, V any] struct {
	// OwnerColumn is the FK column on the version table, e.g.
	// "service_agreement_id".
	OwnerColumn string
	// ExcludedFields are json keys never captured nor re-applied: identity,
	// ownership and the ledger's own metadata, plus collection keys.
	ExcludedFields []string
	Collections    []Collection[E]

	ID         func(e *E) uint
	SetCurrent func(e *E, version int, at time.Time, actorID *uint)
	NewVersion func(e *E, version int, snap Snapshot, at time.Time, actorID *uint) *V
	Snapshot   func(v *V) Snapshot
}

// Ledger owns the append-only version history of one entity variant.
// History is never rewritten or truncated, only extended; a restore appends
// a new version whose content matches the old snapshot.
type Ledger[E any, V any] struct {
	db     *gorm.DB
	schema Schema[E, V]
}

func NewLedger[E any, V any](db *gorm.DB, schema Schema[E, V]) *Ledger[E, V] {
	return &Ledger[E, V]{db: db, schema: schema}
}

// Append snapshots the entity's current in-memory state (after whatever
// edits the caller already applied) as the next version, bumping the
// entity's counter and last-modified metadata in the same transaction.
func (l *Ledger[E, V]) Append(e *E, actorID *uint) (*V, error) {
	var created *V
	err := l.db.Transaction(func(tx *gorm.DB) error {
		v, err := l.AppendIn(tx, e, actorID)
		created = v
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// AppendIn is Append composed into a caller-owned transaction, for
// operations that must write the entity and its new version together with
// other rows (create seeding, collection replacement on update).
func (l *Ledger[E, V]) AppendIn(tx *gorm.DB, e *E, actorID *uint) (*V, error) {
	return l.appendTx(tx, e, actorID)
}

// Restore applies the snapshot of version number onto the live entity,
// replaces its collections wholesale, then appends the result as a brand
// new version. Versions after number remain untouched.
func (l *Ledger[E, V]) Restore(e *E, number int, actorID *uint) (*V, error) {
	if l.schema.ID(e) == 0 {
		return nil, ErrInvalidState
	}
	var created *V
	err := l.db.Transaction(func(tx *gorm.DB) error {
		var v V
		cond := fmt.Sprintf("%s = ? AND version_number = ?", l.schema.OwnerColumn)
		if err := tx.Where(cond, l.schema.ID(e), number).First(&v).Error; err != nil {
			return translateStoreErr(err)
		}
		snap := l.schema.Snapshot(&v)
		if err := RestoreFields(e, snap.Data, l.schema.ExcludedFields...); err != nil {
			return err
		}
		for _, col := range l.schema.Collections {
			if err := col.Replace(tx, e, snap.Collections[col.Name]); err != nil {
				return err
			}
		}
		nv, err := l.appendTx(tx, e, actorID)
		created = nv
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Version loads one version row by its number, scoped to the entity. A
// number the entity never produced is NotFound, which also covers a
// version belonging to some other entity.
func (l *Ledger[E, V]) Version(entityID uint, number int) (*V, error) {
	var v V
	cond := fmt.Sprintf("%s = ? AND version_number = ?", l.schema.OwnerColumn)
	if err := l.db.Where(cond, entityID, number).First(&v).Error; err != nil {
		return nil, translateStoreErr(err)
	}
	return &v, nil
}

// DecodeSnapshot returns a version's snapshot blobs.
func (l *Ledger[E, V]) DecodeSnapshot(v *V) Snapshot {
	return l.schema.Snapshot(v)
}

func (l *Ledger[E, V]) appendTx(tx *gorm.DB, e *E, actorID *uint) (*V, error) {
	id := l.schema.ID(e)
	if id == 0 {
		return nil, ErrInvalidState
	}
	// The counter is re-read inside the transaction; the in-memory copy may
	// be stale under concurrent appends. The unique index on
	// (owner, version_number) is the backstop.
	var row struct{ CurrentVersion int }
	if err := tx.Model(new(E)).Select("current_version").Where("id = ?", id).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidState
		}
		return nil, err
	}
	next := row.CurrentVersion + 1

	snap := Snapshot{Collections: map[string]string{}}
	data, err := CaptureFields(e, l.schema.ExcludedFields...)
	if err != nil {
		return nil, err
	}
	snap.Data = data
	for _, col := range l.schema.Collections {
		blob, err := col.Capture(e)
		if err != nil {
			return nil, err
		}
		snap.Collections[col.Name] = blob
	}

	now := time.Now().UTC()
	l.schema.SetCurrent(e, next, now, actorID)
	if err := tx.Omit(clause.Associations).Save(e).Error; err != nil {
		return nil, translateStoreErr(err)
	}
	v := l.schema.NewVersion(e, next, snap, now, actorID)
	if err := tx.Create(v).Error; err != nil {
		return nil, translateStoreErr(err)
	}
	return v, nil
}
