package section

import (
	"strings"
	"time"
)

type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeNumber   FieldType = "number"
	FieldTypeDate     FieldType = "date"
	FieldTypeEmail    FieldType = "email"
	FieldTypeTel      FieldType = "tel"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeSelect   FieldType = "select"
)

// FieldDefinition is one typed field of a section. Options only apply to
// select fields.
type FieldDefinition struct {
	Name         string    `json:"name" bson:"name" validate:"required"`
	Type         FieldType `json:"type" bson:"type" validate:"oneof=text number date email tel textarea select"`
	Options      []string  `json:"options,omitempty" bson:"options,omitempty"`
	Required     bool      `json:"required" bson:"required"`
	DefaultValue any       `json:"defaultValue,omitempty" bson:"defaultValue,omitempty"`
}

type Section struct {
	ID          string            `json:"id"`
	Name        string            `json:"name" validate:"required"`
	DisplayName string            `json:"displayName" validate:"required"`
	Description string            `json:"description,omitempty"`
	Fields      []FieldDefinition `json:"fields" validate:"dive"`
	Order       int               `json:"order"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// normalize trims names and fills the default field type.
func (s *Section) normalize() {
	s.Name = strings.TrimSpace(s.Name)
	s.DisplayName = strings.TrimSpace(s.DisplayName)
	for i := range s.Fields {
		s.Fields[i].Name = strings.TrimSpace(s.Fields[i].Name)
		if s.Fields[i].Type == "" {
			s.Fields[i].Type = FieldTypeText
		}
	}
	if s.Fields == nil {
		s.Fields = []FieldDefinition{}
	}
}

// duplicateField returns the first field name declared twice, or "".
func (s *Section) duplicateField() string {
	seen := make(map[string]struct{}, len(s.Fields))
	for _, f := range s.Fields {
		if _, ok := seen[f.Name]; ok {
			return f.Name
		}
		seen[f.Name] = struct{}{}
	}
	return ""
}

// Field looks a definition up by name.
func (s *Section) Field(name string) (FieldDefinition, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDefinition{}, false
}
