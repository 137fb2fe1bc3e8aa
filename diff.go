package medlai

// ItemRef identifies one item of a discharge record.
type ItemRef struct {
	Category Category `json:"category"`
	Index    int      `json:"index"`
	Text     string   `json:"text"`
}

// ModifiedItem is an item whose text changed at the same category position.
type ModifiedItem struct {
	Old ItemRef `json:"old"`
	New ItemRef `json:"new"`
}

// DiffResult represents the difference between two versions of a record.
type DiffResult struct {
	// Added contains items that are new (not in the previous version).
	Added []ItemRef `json:"added"`

	// Removed contains items that were removed (not in the new version).
	Removed []ItemRef `json:"removed"`

	// Unchanged contains items present in both versions.
	Unchanged []ItemRef `json:"unchanged"`

	// Modified pairs removed and added items that occupy the same position
	// within a category.
	Modified []ModifiedItem `json:"modified"`
}

// DiffStats contains summary statistics for a diff.
type DiffStats struct {
	Added     int `json:"added"`
	Removed   int `json:"removed"`
	Unchanged int `json:"unchanged"`
	Modified  int `json:"modified"`
}

// Stats returns summary statistics for the diff.
func (d *DiffResult) Stats() DiffStats {
	return DiffStats{
		Added:     len(d.Added),
		Removed:   len(d.Removed),
		Unchanged: len(d.Unchanged),
		Modified:  len(d.Modified),
	}
}

// HasChanges returns true if there are any differences.
func (d *DiffResult) HasChanges() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0 || len(d.Modified) > 0
}

// NeedsTranslation returns the items whose translation is not already known
// from the previous version: added items and the new side of modified ones.
func (d *DiffResult) NeedsTranslation() []ItemRef {
	result := make([]ItemRef, 0, len(d.Added)+len(d.Modified))
	result = append(result, d.Added...)
	for _, m := range d.Modified {
		result = append(result, m.New)
	}
	return result
}

// DiffRecords compares two records category by category. Items are matched
// by text hash; a removed and an added item at the same index of the same
// category are reported as Modified. A nil record is treated as empty.
func DiffRecords(oldRec, newRec *DischargeRecord) *DiffResult {
	result := &DiffResult{}

	for _, c := range Categories {
		var oldItems, newItems []string
		if oldRec != nil {
			oldItems = oldRec.Sections[c]
		}
		if newRec != nil {
			newItems = newRec.Sections[c]
		}
		diffCategory(result, c, oldItems, newItems)
	}

	return result
}

func diffCategory(result *DiffResult, c Category, oldItems, newItems []string) {
	oldByHash := make(map[string]bool, len(oldItems))
	newByHash := make(map[string]bool, len(newItems))
	for _, item := range oldItems {
		oldByHash[HashText(item)] = true
	}
	for _, item := range newItems {
		newByHash[HashText(item)] = true
	}

	removed := make(map[int]ItemRef)
	for i, item := range oldItems {
		ref := ItemRef{Category: c, Index: i, Text: item}
		if newByHash[HashText(item)] {
			result.Unchanged = append(result.Unchanged, ref)
		} else {
			removed[i] = ref
		}
	}

	for i, item := range newItems {
		if oldByHash[HashText(item)] {
			continue
		}
		ref := ItemRef{Category: c, Index: i, Text: item}
		if old, ok := removed[i]; ok {
			result.Modified = append(result.Modified, ModifiedItem{Old: old, New: ref})
			delete(removed, i)
			continue
		}
		result.Added = append(result.Added, ref)
	}

	for i := range oldItems {
		if ref, ok := removed[i]; ok {
			result.Removed = append(result.Removed, ref)
		}
	}
}
