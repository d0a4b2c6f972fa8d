package employee

import (
	"context"
	"encoding/json"
	"slices"
	"strings"
	"time"

	employeeerrors "github.com/aswanthpvtk/employee-Task-Backend/internal/employee/errors"
	"github.com/aswanthpvtk/employee-Task-Backend/internal/section"
	"github.com/aswanthpvtk/employee-Task-Backend/internal/shared/apperror"
)

type UpdateMode string

const (
	// UpdateModePath sets one top-level field ({field, value}), upserts one
	// section value ({section, field, value}) or merges the whole payload.
	UpdateModePath UpdateMode = "path"
	// UpdateModeTaxonomy routes known personal and payment keys into their
	// nested objects and writes every other key at the top level.
	UpdateModeTaxonomy UpdateMode = "taxonomy"
)

var immutableKeys = []string{"id", "createdAt", "updatedAt"}

// ParseUpdateMode returns fallback for an empty value.
func ParseUpdateMode(raw string, fallback UpdateMode) (UpdateMode, error) {
	switch UpdateMode(strings.TrimSpace(raw)) {
	case "":
		return fallback, nil
	case UpdateModePath:
		return UpdateModePath, nil
	case UpdateModeTaxonomy:
		return UpdateModeTaxonomy, nil
	default:
		return "", employeeerrors.ErrUnknownUpdateMode
	}
}

type updateResolver struct {
	catalog section.Catalog
}

func newUpdateResolver(catalog section.Catalog) *updateResolver {
	return &updateResolver{catalog: catalog}
}

// Apply mutates emp in place. Nothing is persisted.
func (r *updateResolver) Apply(ctx context.Context, emp *Employee, mode UpdateMode, payload map[string]any) error {
	switch mode {
	case UpdateModePath:
		return r.applyPath(ctx, emp, payload)
	case UpdateModeTaxonomy:
		return applyTaxonomy(emp, payload)
	default:
		return employeeerrors.ErrUnknownUpdateMode
	}
}

func (r *updateResolver) applyPath(ctx context.Context, emp *Employee, payload map[string]any) error {
	rawField, hasField := payload["field"]
	rawSection, hasSection := payload["section"]

	switch {
	case hasField && !hasSection:
		field, err := stringKey(rawField)
		if err != nil {
			return err
		}
		return applyTopLevel(emp, map[string]any{field: payload["value"]})

	case hasField && hasSection:
		field, err := stringKey(rawField)
		if err != nil {
			return err
		}
		sectionName, err := stringKey(rawSection)
		if err != nil {
			return err
		}
		return r.upsertSectionValue(ctx, emp, sectionName, field, payload["value"])

	default:
		return applyTopLevel(emp, payload)
	}
}

// upsertSectionValue only consults the catalog when the employee has no
// snapshot for sectionName yet.
func (r *updateResolver) upsertSectionValue(ctx context.Context, emp *Employee, sectionName, field string, value any) error {
	if snap := emp.Snapshot(sectionName); snap != nil {
		snap.Set(field, value)
		return nil
	}

	sec, err := r.catalog.FindByName(ctx, sectionName)
	if err != nil {
		return err
	}

	snap := SectionSnapshot{SectionID: sec.ID, SectionName: sec.Name}
	snap.Set(field, value)
	emp.Sections = append(emp.Sections, snap)
	return nil
}

func applyTaxonomy(emp *Employee, payload map[string]any) error {
	personal := map[string]any{}
	payment := map[string]any{}
	rest := make(map[string]any, len(payload))

	for k, v := range payload {
		switch {
		case slices.Contains(personalInfoFields, k):
			personal[k] = v
		case slices.Contains(paymentInfoFields, k):
			payment[k] = v
		default:
			rest[k] = v
		}
	}

	if err := applyTopLevel(emp, rest); err != nil {
		return err
	}

	nested := map[string]any{}
	if len(personal) > 0 {
		nested["personalInfo"] = personal
	}
	if len(payment) > 0 {
		nested["paymentInfo"] = payment
	}
	return applyTopLevel(emp, nested)
}

// applyTopLevel merges patch onto emp through its JSON form. Immutable and
// unknown keys are dropped; nested objects merge key by key; a value of the
// wrong type is a validation error. Keys match case-insensitively, as
// json.Unmarshal does.
func applyTopLevel(emp *Employee, patch map[string]any) error {
	clean := make(map[string]any, len(patch))
	for k, v := range patch {
		if !isImmutableKey(k) {
			clean[k] = v
		}
	}
	if len(clean) == 0 {
		return nil
	}

	for k, raw := range clean {
		if !strings.EqualFold(k, "joiningDate") {
			continue
		}
		s, isString := raw.(string)
		if !isString {
			return employeeerrors.ErrInvalidJoiningDate
		}
		t, err := parseJoiningDate(s)
		if err != nil {
			return err
		}
		emp.JoiningDate = t
		delete(clean, k)
	}
	if len(clean) == 0 {
		return nil
	}

	data, err := json.Marshal(clean)
	if err != nil {
		return apperror.Validation("Invalid input")
	}

	// A sections value replaces the list; decoding into the old backing
	// array would leak stale snapshot fields.
	replacesSections := false
	for k := range clean {
		if strings.EqualFold(k, "sections") {
			emp.Sections = nil
			replacesSections = true
		}
	}

	id, createdAt, updatedAt := emp.ID, emp.CreatedAt, emp.UpdatedAt
	err = json.Unmarshal(data, emp)
	emp.ID, emp.CreatedAt, emp.UpdatedAt = id, createdAt, updatedAt
	if err != nil {
		return apperror.MapDecodeError(err)
	}
	if replacesSections {
		return checkSnapshots(emp.Sections)
	}
	return nil
}

func isImmutableKey(k string) bool {
	for _, key := range immutableKeys {
		if strings.EqualFold(k, key) {
			return true
		}
	}
	return false
}

// checkSnapshots rejects a merged section list holding two snapshots with
// one name or two entries for one field.
func checkSnapshots(sections []SectionSnapshot) error {
	names := make(map[string]struct{}, len(sections))
	for _, snap := range sections {
		if _, dup := names[snap.SectionName]; dup {
			return employeeerrors.ErrDuplicateSnapshot
		}
		names[snap.SectionName] = struct{}{}

		fields := make(map[string]struct{}, len(snap.Fields))
		for _, f := range snap.Fields {
			if _, dup := fields[f.Name]; dup {
				return employeeerrors.ErrDuplicateSnapshotField
			}
			fields[f.Name] = struct{}{}
		}
	}
	return nil
}

// parseJoiningDate accepts RFC 3339 timestamps and plain calendar dates.
func parseJoiningDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, employeeerrors.ErrInvalidJoiningDate
}

func stringKey(v any) (string, error) {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", employeeerrors.ErrFieldNameRequired
	}
	return s, nil
}
