package transform

import (
	"strings"

	"brickset/internal/table"
)

type Transformer interface {
	Name() string
	Apply(t *table.Table) error
}

// Concat joins the text of Columns with Separator into Column. Values are
// used exactly as loaded; a separator already inside a value is not escaped.
type Concat struct {
	Column    string
	Columns   []string
	Separator string
}

func (c Concat) Name() string { return "concat:" + c.Column }

func (c Concat) Apply(t *table.Table) error {
	idx := make([]int, len(c.Columns))
	for i, name := range c.Columns {
		j, err := t.ColumnIndex(name)
		if err != nil {
			return err
		}
		idx[i] = j
	}

	values := make([]string, len(t.Rows))
	parts := make([]string, len(idx))
	for r, row := range t.Rows {
		for i, j := range idx {
			parts[i] = row[j]
		}
		values[r] = strings.Join(parts, c.Separator)
	}
	return t.SetColumn(c.Column, values)
}
