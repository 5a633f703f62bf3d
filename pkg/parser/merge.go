package parser

// MergeResults combines per-file results into one, so a grid file and its
// property files can be consumed as a single mapping.
//
// Dimensions come from the first result that has them. For every keyword
// the first found entry wins; a keyword found nowhere keeps its first
// not-found entry. Keywords keep the order of their first appearance, with
// DIMENS first when present.
func MergeResults(results ...*Result) *Result {
	merged := &Result{}

	for _, r := range results {
		if r != nil && r.Dimensions != nil {
			d := *r.Dimensions
			merged.Dimensions = &d
			merged.put(dimensionsEntry(&d, r.Source))
			break
		}
	}

	for _, r := range results {
		if r == nil {
			continue
		}
		for _, e := range r.Entries {
			existing := merged.Entry(e.Keyword)
			switch {
			case existing == nil:
				merged.put(e)
			case !existing.Found && e.Found:
				merged.put(e)
			}
		}
	}

	return merged
}
