package keywords

// Merge returns a table containing base followed by extra categories.
// A category whose name already exists is extended with the new phrases and
// keeps its original weight and position; other categories are appended.
// Duplicate phrases inside a category are dropped, keeping the first occurrence.
func Merge(base Table, extra ...Category) Table {
	merged := base.Categories()
	index := make(map[string]int, len(merged))
	for i, c := range merged {
		index[c.Name] = i
	}

	for _, c := range extra {
		if i, ok := index[c.Name]; ok {
			merged[i].Phrases = append(merged[i].Phrases, c.Phrases...)
			continue
		}
		index[c.Name] = len(merged)
		merged = append(merged, Category{
			Name:    c.Name,
			Weight:  c.Weight,
			Phrases: append([]string(nil), c.Phrases...),
		})
	}

	for i := range merged {
		merged[i].Phrases = dedupe(merged[i].Phrases)
	}
	return New(merged...)
}

// MergeTables merges every category of the extra tables into base.
func MergeTables(base Table, extra ...Table) Table {
	var categories []Category
	for _, t := range extra {
		categories = append(categories, t.Categories()...)
	}
	return Merge(base, categories...)
}

func dedupe(phrases []string) []string {
	seen := make(map[string]bool, len(phrases))
	out := make([]string, 0, len(phrases))
	for _, p := range normalizeCategory(Category{Phrases: phrases}).Phrases {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
