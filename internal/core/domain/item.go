package domain

import (
	"encoding/json"
	"fmt"
)

// AttachmentsField is the key under which fetched attachment records are
// stored on a parent list item. It matches the navigation property name
// SharePoint itself uses, so callers see the same shape whether attachments
// were expanded server-side or fetched by the client.
const AttachmentsField = "AttachmentFiles"

// ListItem is one record from a SharePoint collection: a list item, file,
// or folder entry. The REST API returns records as open-ended field sets
// that vary per list schema, so items are kept as raw key/value mappings
// rather than typed structs.
type ListItem map[string]any

// ID returns the item's numeric identifier.
// List items carry it as "Id"; some endpoints use "ID".
func (it ListItem) ID() (int, error) {
	raw, ok := it["Id"]
	if !ok {
		raw, ok = it["ID"]
	}
	if !ok {
		return 0, fmt.Errorf("item has no Id field")
	}

	switch v := raw.(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("item Id %q is not an integer: %w", v, err)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("item Id has unexpected type %T", raw)
	}
}

// SetAttachments stores the item's attachment records in place.
func (it ListItem) SetAttachments(files []ListItem) {
	it[AttachmentsField] = files
}

// Attachments returns the attachment records previously stored by
// SetAttachments, or nil if none were attached.
func (it ListItem) Attachments() []ListItem {
	files, _ := it[AttachmentsField].([]ListItem)
	return files
}

// StringField returns a field value as a string, or "" if the field is
// absent or not a string. Convenience for display code.
func (it ListItem) StringField(name string) string {
	s, _ := it[name].(string)
	return s
}
