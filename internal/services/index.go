package services

import "wafer-histogram/internal/models"

// DistinctWaferIDs returns each WaferID once, in the order it is first seen
func DistinctWaferIDs(table *models.Table) []string {
	ids := make([]string, 0)
	if table == nil {
		return ids
	}

	seen := make(map[string]struct{})
	for _, rec := range table.Records {
		if _, ok := seen[rec.WaferID]; ok {
			continue
		}
		seen[rec.WaferID] = struct{}{}
		ids = append(ids, rec.WaferID)
	}
	return ids
}
