package dataset

import (
	"strconv"
	"strings"
)

// DropDuplicates returns a table without exact-duplicate rows. The first
// occurrence of each row is kept and row order is preserved. The input is
// not modified.
func DropDuplicates(t *Table) (*Table, int) {
	out := &Table{Name: t.Name, Columns: append([]Column(nil), t.Columns...)}
	seen := make(map[string]struct{}, len(t.Rows))
	dropped := 0
	for _, row := range t.Rows {
		k := rowKey(row)
		if _, dup := seen[k]; dup {
			dropped++
			continue
		}
		seen[k] = struct{}{}
		out.Rows = append(out.Rows, row)
	}
	out.reindex()
	return out, dropped
}

// rowKey encodes a row with kind tags so a number never collides with text
// that spells the same digits. Text is quoted so the separator byte inside a
// cell cannot shift field boundaries.
func rowKey(row []Value) string {
	var b strings.Builder
	for i, v := range row {
		if i > 0 {
			b.WriteByte(0x1f)
		}
		switch {
		case v.Missing:
			b.WriteString("~")
		case v.Kind == KindNumber:
			b.WriteString("n:")
			b.WriteString(strconv.FormatFloat(v.Num, 'g', -1, 64))
		default:
			b.WriteString("s:")
			b.WriteString(strconv.Quote(v.Text))
		}
	}
	return b.String()
}
