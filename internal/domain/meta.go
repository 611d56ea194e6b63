package domain

import "time"

// Meta carries the fields every stored document shares. Entities embed it
// (by pointer receiver methods it satisfies repository.Document).
type Meta struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	CreatedOn time.Time `bson:"createdOn" json:"createdOn"`
	UpdatedOn time.Time `bson:"updatedOn,omitempty" json:"updatedOn,omitempty"`
}

// DocumentID returns the document's id.
func (m *Meta) DocumentID() string { return m.ID }

// SetDocumentID assigns the document's id.
func (m *Meta) SetDocumentID(id string) { m.ID = id }

// TouchCreated stamps the server-assigned creation time.
func (m *Meta) TouchCreated(t time.Time) { m.CreatedOn = t }

// TouchUpdated stamps the last-update time.
func (m *Meta) TouchUpdated(t time.Time) { m.UpdatedOn = t }
