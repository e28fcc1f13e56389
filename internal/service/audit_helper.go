package service

import (
	"encoding/json"

	"bizhive/internal/model"
)

// auditEntry builds an audit row with JSON before/after snapshots. Marshal
// failures degrade to empty snapshots rather than blocking the mutation.
func auditEntry(actorEmail, action, table, recordID string, oldData, newData interface{}) *model.AuditLog {
	entry := &model.AuditLog{
		UserEmail: actorEmail,
		Action:    action,
		TableName: table,
		RecordID:  recordID,
	}
	if oldData != nil {
		if b, err := json.Marshal(oldData); err == nil {
			entry.OldData = string(b)
		}
	}
	if newData != nil {
		if b, err := json.Marshal(newData); err == nil {
			entry.NewData = string(b)
		}
	}
	return entry
}
