package reconcile

import (
	"strings"
	"time"

	"sirtis/internal/domain/models"
)

// buildFolderPath derives the canonical slash-joined folder path:
// department, sub-unit (omitted when absent), category display label.
func buildFolderPath(res *Resolution) string {
	segments := []string{res.DepartmentName}
	if res.SubUnitName != nil && *res.SubUnitName != "" {
		segments = append(segments, *res.SubUnitName)
	}
	segments = append(segments, res.CategoryDisplay)
	return strings.Join(segments, "/")
}

// metadataPatch builds the reconciliation patch applied over a
// document's existing custom metadata. The reconciledAt stamp is added
// separately at write time so that change detection stays idempotent: a
// run that changes nothing must not flag every document just because
// the clock moved.
func metadataPatch(res *Resolution) models.Metadata {
	var subunit any
	if res.SubUnitName != nil {
		subunit = *res.SubUnitName
	}
	return models.Metadata{
		"department":      res.DepartmentName,
		"subunit":         subunit,
		"categoryDisplay": res.CategoryDisplay,
	}
}

// finalize fills in the derived fields of a resolution: folder path,
// merged metadata, and the changed flag. A document counts as changed
// when its resolved department name, category enum, folder path, or
// canonicalized metadata differs from what is currently stored.
func finalize(doc *models.Document, res *Resolution, now time.Time) {
	res.FolderPath = buildFolderPath(res)

	patch := metadataPatch(res)
	merged := doc.CustomMetadata.Merge(patch)

	changed := false
	if res.DepartmentName != doc.DepartmentName {
		changed = true
	}
	if doc.Category == nil || *doc.Category != res.Category {
		changed = true
	}
	if res.FolderPath != doc.FolderPath {
		changed = true
	}
	if merged.Canonical() != doc.CustomMetadata.Canonical() {
		changed = true
	}
	// Reconciliation always pulls documents out of personal repositories.
	if doc.IsPersonal {
		changed = true
	}

	if changed {
		merged["reconciledAt"] = now.UTC().Format(time.RFC3339)
	}

	res.Changed = changed
	res.mergedMetadata = merged
}
