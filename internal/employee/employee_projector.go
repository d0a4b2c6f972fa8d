package employee

import (
	"github.com/aswanthpvtk/employee-Task-Backend/internal/section"
)

// projectSections snapshots the whole catalog for a new employee. Every
// section gets a snapshot even when the caller supplied none of its values.
func projectSections(catalog []section.Section, personalInfo, paymentInfo map[string]any) []SectionSnapshot {
	snapshots := make([]SectionSnapshot, 0, len(catalog))
	for _, sec := range catalog {
		fields := make([]FieldSnapshot, 0, len(sec.Fields))
		for _, def := range sec.Fields {
			fields = append(fields, FieldSnapshot{
				Name:  def.Name,
				Value: lookupValue(def, personalInfo, paymentInfo),
			})
		}
		snapshots = append(snapshots, SectionSnapshot{
			SectionID:   sec.ID,
			SectionName: sec.Name,
			Fields:      fields,
		})
	}
	return snapshots
}

// lookupValue takes the first present value across sources, then the
// definition's default, then "". nil and "" count as absent.
func lookupValue(def section.FieldDefinition, sources ...map[string]any) any {
	for _, src := range sources {
		if v, ok := src[def.Name]; ok && present(v) {
			return v
		}
	}
	if present(def.DefaultValue) {
		return def.DefaultValue
	}
	return ""
}

func present(v any) bool {
	if v == nil {
		return false
	}
	if s, ok := v.(string); ok && s == "" {
		return false
	}
	return true
}
