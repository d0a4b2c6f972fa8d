package section

import "time"

type FieldDefinitionRequest struct {
	Name         string   `json:"name" binding:"required"`
	Type         string   `json:"type" binding:"omitempty,oneof=text number date email tel textarea select"`
	Options      []string `json:"options"`
	Required     bool     `json:"required"`
	DefaultValue any      `json:"defaultValue"`
}

type CreateSectionRequest struct {
	Name        string                   `json:"name" binding:"required"`
	DisplayName string                   `json:"displayName" binding:"required"`
	Description string                   `json:"description"`
	Fields      []FieldDefinitionRequest `json:"fields" binding:"dive"`
	Order       int                      `json:"order"`
}

// UpdateSectionRequest is a partial update; nil members are left unchanged.
type UpdateSectionRequest struct {
	Name        *string                   `json:"name"`
	DisplayName *string                   `json:"displayName"`
	Description *string                   `json:"description"`
	Fields      *[]FieldDefinitionRequest `json:"fields"`
	Order       *int                      `json:"order"`
}

type SectionResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	DisplayName string            `json:"displayName"`
	Description string            `json:"description,omitempty"`
	Fields      []FieldDefinition `json:"fields"`
	Order       int               `json:"order"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func toFieldDefinitions(req []FieldDefinitionRequest) []FieldDefinition {
	fields := make([]FieldDefinition, len(req))
	for i, f := range req {
		fields[i] = FieldDefinition{
			Name:         f.Name,
			Type:         FieldType(f.Type),
			Options:      f.Options,
			Required:     f.Required,
			DefaultValue: f.DefaultValue,
		}
	}
	return fields
}

func mapToResponse(s Section) SectionResponse {
	return SectionResponse{
		ID:          s.ID,
		Name:        s.Name,
		DisplayName: s.DisplayName,
		Description: s.Description,
		Fields:      s.Fields,
		Order:       s.Order,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func mapToListResponse(sections []Section) []SectionResponse {
	res := make([]SectionResponse, len(sections))
	for i, s := range sections {
		res[i] = mapToResponse(s)
	}
	return res
}
