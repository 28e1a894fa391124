package events

// Catalog event types consumed by downstream invoice tooling, e.g. thumbnail
// regeneration after a design change.
const (
	EventTemplateCreated        = "template.created"
	EventTemplateUpdated        = "template.updated"
	EventTemplateDeleted        = "template.deleted"
	EventTemplateDuplicated     = "template.duplicated"
	EventTemplateDefaultChanged = "template.default_changed"
)

// TemplatePayload captures the minimal data downstream consumers need to
// react to a catalog change.
type TemplatePayload struct {
	TemplateID  string `json:"template_id"`
	Name        string `json:"name"`
	SourceID    string `json:"source_id,omitempty"`
	Fingerprint string `json:"fingerprint,omitempty"`
}

// ToMap converts a payload into an outbox-friendly map.
func (p TemplatePayload) ToMap() map[string]any {
	payload := map[string]any{
		"template_id": p.TemplateID,
		"name":        p.Name,
	}
	if p.SourceID != "" {
		payload["source_id"] = p.SourceID
	}
	if p.Fingerprint != "" {
		payload["fingerprint"] = p.Fingerprint
	}
	return payload
}
