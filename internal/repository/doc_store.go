package repository

import (
	"context"
	"encoding/json"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DocumentRow is the storage shape of the document variant: one row per
// record, payload kept as opaque JSON. There is no transaction spanning
// records; every mutation is an independent write.
type DocumentRow struct {
	Collection string `gorm:"primaryKey;size:64"`
	ID         string `gorm:"primaryKey;size:64;column:id"`
	Data       string `gorm:"type:jsonb"`
}

func (DocumentRow) TableName() string {
	return "documents"
}

// DocStore is the multi-user variant on Postgres. Every mutation
// publishes the fresh ordered snapshot to the hub, which backs the
// websocket feed for all connected clients.
type DocStore struct {
	db  *gorm.DB
	hub *Hub
}

func NewDocStore(db *gorm.DB, hub *Hub) (*DocStore, error) {
	if err := db.AutoMigrate(&DocumentRow{}); err != nil {
		return nil, err
	}
	if hub == nil {
		hub = NewHub()
	}
	return &DocStore{db: db, hub: hub}, nil
}

// LoadAll returns the ordered collection; failures degrade to empty.
func (s *DocStore) LoadAll(ctx context.Context, col Collection) []Document {
	var rows []DocumentRow
	err := s.db.WithContext(ctx).Where("collection = ?", col.Name).Find(&rows).Error
	if err != nil {
		log.Printf("docstore: loading %s: %v", col.Name, err)
		return []Document{}
	}
	docs := make([]Document, 0, len(rows))
	for _, r := range rows {
		docs = append(docs, Document{ID: r.ID, Data: json.RawMessage(r.Data)})
	}
	sortDocuments(docs, col)
	return docs
}

// Save is a full-record upsert. Failures are logged and swallowed.
func (s *DocStore) Save(ctx context.Context, col Collection, id string, data json.RawMessage) {
	row := DocumentRow{Collection: col.Name, ID: id, Data: string(data)}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
	if err != nil {
		log.Printf("docstore: saving %s/%s: %v", col.Name, id, err)
		return
	}
	s.hub.Publish(col, s.LoadAll(ctx, col))
}

// Delete removes one record by id.
func (s *DocStore) Delete(ctx context.Context, col Collection, id string) {
	err := s.db.WithContext(ctx).
		Where("collection = ? AND id = ?", col.Name, id).
		Delete(&DocumentRow{}).Error
	if err != nil {
		log.Printf("docstore: deleting %s/%s: %v", col.Name, id, err)
		return
	}
	s.hub.Publish(col, s.LoadAll(ctx, col))
}

// Subscribe pushes the current snapshot immediately and after every
// mutation that goes through this process.
func (s *DocStore) Subscribe(col Collection, fn func([]Document)) func() {
	unsub := s.hub.Subscribe(col, fn)
	fn(s.LoadAll(context.Background(), col))
	return unsub
}
