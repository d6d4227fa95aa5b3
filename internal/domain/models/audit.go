package models

import "time"

// Creation-type audit actions. Reconciliation reads only these; other
// audit actions never attribute ownership.
const (
	AuditActionDocumentCreate = "document.create"
	AuditActionDocumentUpload = "document.upload"
)

// AuditEntry is the creation subset of the audit log: who performed a
// creation or upload action on a document. Used as a last-resort signal
// when a document's own uploader field is ambiguous.
type AuditEntry struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	ActorID    string    `json:"actor_id"`
	Action     string    `json:"action"`
	CreatedAt  time.Time `json:"created_at"`
}
