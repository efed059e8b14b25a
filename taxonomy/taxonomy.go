// Package taxonomy parses hierarchical rank-label strings into a fixed-depth
// feature-by-rank table.
//
// Raw labels are semicolon-separated, ordered broad to specific, and commonly
// carry per-rank prefixes (k__, p__, ...). Taxonomy is advisory metadata:
// malformed entries degrade to unclassified rows instead of failing the load.
package taxonomy

import "strings"

// Unclassified is the sentinel for rank levels missing from the source.
// When a known ancestor exists the sentinel carries it, e.g.
// "unclassified_p__Firmicutes", so grouping at a deep rank still partitions
// deeper-unclassified features by their last classified ancestor.
const Unclassified = "unclassified"

// Table holds one row of rank labels per feature, all padded to the same
// depth. Rows are positionally aligned with the abundance table that the
// taxonomy annotates.
type Table struct {
	FeatureIDs []string
	Labels     [][]string // feature × depth, no empty cells
}

// Parse builds a Table from one raw taxonomy string per feature.
//
// The table depth is the longest parsed entry across all features; shorter
// entries are right-padded with the Unclassified sentinel carrying the last
// classified ancestor. An empty or unparseable entry yields an
// all-Unclassified row.
func Parse(featureIDs, raw []string) *Table {
	parsed := make([][]string, len(raw))
	depth := 1
	for i, s := range raw {
		parsed[i] = split(s)
		if len(parsed[i]) > depth {
			depth = len(parsed[i])
		}
	}

	labels := make([][]string, len(parsed))
	for i, levels := range parsed {
		labels[i] = pad(levels, depth)
	}

	ids := make([]string, len(featureIDs))
	copy(ids, featureIDs)
	return &Table{FeatureIDs: ids, Labels: labels}
}

// Depth returns the fixed rank depth of the table.
func (t *Table) Depth() int {
	if len(t.Labels) == 0 {
		return 0
	}
	return len(t.Labels[0])
}

// Rank returns the labels at the given rank level (0 = broadest), in
// feature order.
func (t *Table) Rank(level int) []string {
	out := make([]string, len(t.Labels))
	for i, row := range t.Labels {
		out[i] = row[level]
	}
	return out
}

// Strings rebuilds one "; "-joined label string per feature. Parsing the
// result reproduces the table unchanged, which makes export/reload a fixed
// point on taxonomy content.
func (t *Table) Strings() []string {
	out := make([]string, len(t.Labels))
	for i, row := range t.Labels {
		out[i] = strings.Join(row, "; ")
	}
	return out
}

// Select returns a new Table restricted to the given row positions, in the
// given order.
func (t *Table) Select(idx []int) *Table {
	ids := make([]string, len(idx))
	labels := make([][]string, len(idx))
	for k, i := range idx {
		ids[k] = t.FeatureIDs[i]
		row := make([]string, len(t.Labels[i]))
		copy(row, t.Labels[i])
		labels[k] = row
	}
	return &Table{FeatureIDs: ids, Labels: labels}
}

func split(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ";")
	levels := make([]string, 0, len(parts))
	for _, p := range parts {
		levels = append(levels, strings.TrimSpace(p))
	}
	// Trailing empty levels are absence, not labels.
	for len(levels) > 0 && levels[len(levels)-1] == "" {
		levels = levels[:len(levels)-1]
	}
	return levels
}

func pad(levels []string, depth int) []string {
	row := make([]string, depth)
	ancestor := ""
	for i := 0; i < depth; i++ {
		label := ""
		if i < len(levels) {
			label = levels[i]
		}
		if label == "" {
			if ancestor != "" {
				label = Unclassified + "_" + ancestor
			} else {
				label = Unclassified
			}
		} else if !strings.HasPrefix(label, Unclassified) {
			ancestor = label
		}
		row[i] = label
	}
	return row
}
