package ast

// Equal reports structural equality of two documents, ignoring node
// locations, ids, and the source URI. It is the equality the round-trip
// guarantee is stated in: re-parsing written output yields a document Equal
// to the original even though positions moved.
func Equal(a, b *Document) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if a == nil {
		return true
	}
	if !equalFeature(a.Feature, b.Feature) {
		return false
	}
	if len(a.Comments) != len(b.Comments) {
		return false
	}
	for i := range a.Comments {
		if a.Comments[i].Text != b.Comments[i].Text {
			return false
		}
	}
	return true
}

func equalFeature(a, b *Feature) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if a == nil {
		return true
	}
	if a.Language != b.Language || a.Keyword != b.Keyword ||
		a.Name != b.Name || a.Description != b.Description {
		return false
	}
	if !equalTags(a.Tags, b.Tags) || len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		ac, bc := a.Children[i], b.Children[i]
		switch {
		case ac.Background != nil:
			if bc.Background == nil || !equalBackground(ac.Background, bc.Background) {
				return false
			}
		case ac.Scenario != nil:
			if bc.Scenario == nil || !equalScenario(ac.Scenario, bc.Scenario) {
				return false
			}
		case ac.Rule != nil:
			if bc.Rule == nil || !equalRule(ac.Rule, bc.Rule) {
				return false
			}
		}
	}
	return true
}

func equalRule(a, b *Rule) bool {
	if a.Keyword != b.Keyword || a.Name != b.Name || a.Description != b.Description {
		return false
	}
	if !equalTags(a.Tags, b.Tags) || len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		ac, bc := a.Children[i], b.Children[i]
		switch {
		case ac.Background != nil:
			if bc.Background == nil || !equalBackground(ac.Background, bc.Background) {
				return false
			}
		case ac.Scenario != nil:
			if bc.Scenario == nil || !equalScenario(ac.Scenario, bc.Scenario) {
				return false
			}
		}
	}
	return true
}

func equalBackground(a, b *Background) bool {
	if a.Keyword != b.Keyword || a.Name != b.Name || a.Description != b.Description {
		return false
	}
	return equalSteps(a.Steps, b.Steps)
}

func equalScenario(a, b *Scenario) bool {
	if a.Kind != b.Kind || a.Keyword != b.Keyword ||
		a.Name != b.Name || a.Description != b.Description {
		return false
	}
	if !equalTags(a.Tags, b.Tags) || !equalSteps(a.Steps, b.Steps) {
		return false
	}
	if len(a.Examples) != len(b.Examples) {
		return false
	}
	for i := range a.Examples {
		if !equalExamples(a.Examples[i], b.Examples[i]) {
			return false
		}
	}
	return true
}

func equalExamples(a, b Examples) bool {
	if a.Keyword != b.Keyword || a.Name != b.Name || a.Description != b.Description {
		return false
	}
	if !equalTags(a.Tags, b.Tags) {
		return false
	}
	if (a.TableHeader == nil) != (b.TableHeader == nil) {
		return false
	}
	if a.TableHeader != nil && !equalRow(*a.TableHeader, *b.TableHeader) {
		return false
	}
	if len(a.TableBody) != len(b.TableBody) {
		return false
	}
	for i := range a.TableBody {
		if !equalRow(a.TableBody[i], b.TableBody[i]) {
			return false
		}
	}
	return true
}

func equalSteps(a, b []Step) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Keyword != b[i].Keyword || a[i].KeywordType != b[i].KeywordType ||
			a[i].Text != b[i].Text {
			return false
		}
		aa, ba := a[i].Argument, b[i].Argument
		if (aa == nil) != (ba == nil) {
			return false
		}
		if aa == nil {
			continue
		}
		if (aa.DataTable == nil) != (ba.DataTable == nil) ||
			(aa.DocString == nil) != (ba.DocString == nil) {
			return false
		}
		if aa.DataTable != nil {
			if len(aa.DataTable.Rows) != len(ba.DataTable.Rows) {
				return false
			}
			for j := range aa.DataTable.Rows {
				if !equalRow(aa.DataTable.Rows[j], ba.DataTable.Rows[j]) {
					return false
				}
			}
		}
		if aa.DocString != nil {
			if aa.DocString.Content != ba.DocString.Content ||
				aa.DocString.MediaType != ba.DocString.MediaType {
				return false
			}
		}
	}
	return true
}

func equalRow(a, b TableRow) bool {
	if len(a.Cells) != len(b.Cells) {
		return false
	}
	for i := range a.Cells {
		if a.Cells[i].Value != b.Cells[i].Value {
			return false
		}
	}
	return true
}

func equalTags(a, b []Tag) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name {
			return false
		}
	}
	return true
}
