package repositories

import (
	"fmt"
	"strings"
	"time"
)

// Record is a human readable view of one store entry, used by the inspectors.
type Record struct {
	Key     string
	Kind    string
	At      time.Time
	Entity  string
	Detail  string
	Flagged bool
}

// DescribeRecord decodes a raw key/value pair according to its key prefix.
// Index entries are reported without decoding their value.
func DescribeRecord(key string, value []byte) Record {
	record := Record{Key: key}
	kind, _, _ := strings.Cut(key, ":")
	record.Kind = strings.ToUpper(kind)

	switch kind {
	case "msg":
		var m messageRecord
		if err := unmarshal(value, &m); err != nil {
			record.Detail = fmt.Sprintf("undecodable message: %v", err)
			return record
		}
		record.At = time.Unix(0, m.At).UTC()
		record.Entity = m.SenderID + " -> " + m.RecipientID
		record.Detail = m.Text
		if m.Image != "" {
			record.Detail += " [" + m.Image + "]"
		}
		record.Flagged = !m.Seen
	case "user":
		var u userRecord
		if err := unmarshal(value, &u); err != nil {
			record.Detail = fmt.Sprintf("undecodable user: %v", err)
			return record
		}
		record.At = time.Unix(0, u.CreatedAt).UTC()
		record.Entity = u.ID
		record.Detail = u.FullName + " <" + u.Email + ">"
	default:
		record.Detail = string(value)
	}
	return record
}
