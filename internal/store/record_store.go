package store

import (
	"errors"

	"gorm.io/gorm"

	"registry-service/internal/model"
)

// DocumentRef points at an uploaded consent document
type DocumentRef struct {
	StorageName  string
	OriginalName string
}

// RecordStore persists finalized registry records. Every read is scoped by
// the owning user; there is no unscoped access path.
type RecordStore struct {
	db *gorm.DB
}

// NewRecordStore creates a record store over the given database
func NewRecordStore(db *gorm.DB) *RecordStore {
	return &RecordStore{db: db}
}

// Create inserts one record owned by rec.UserID and returns its id
func (s *RecordStore) Create(rec *model.Record) (uint, error) {
	if rec.UserID == 0 {
		return 0, errors.New("record has no owner")
	}
	if result := s.db.Create(rec); result.Error != nil {
		return 0, result.Error
	}
	return rec.ID, nil
}

// ListByUser returns all records owned by userID, most recent first
func (s *RecordStore) ListByUser(userID uint) ([]model.Record, error) {
	var records []model.Record
	result := s.db.
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}
	return records, nil
}

// DocumentRef returns the document reference of the given record if it is
// owned by userID and carries a document. A record owned by someone else
// yields nothing, same as an absent record.
func (s *RecordStore) DocumentRef(recordID, userID uint) (*DocumentRef, error) {
	var rec model.Record
	result := s.db.Where("id = ? AND user_id = ?", recordID, userID).First(&rec)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	if !rec.HasDocument() {
		return nil, nil
	}

	return &DocumentRef{
		StorageName:  rec.DocumentName,
		OriginalName: rec.DocumentOriginalName,
	}, nil
}
