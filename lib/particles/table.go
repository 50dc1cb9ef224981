package particles

/* table.go renders a Particles collection as a table. The table is only ever
a view over the fields: it is rebuilt from them on each call. */

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Row returns the values of particle i in column order, formatted as text.
func (p *Particles) Row(i int) []string {
	row := make([]string, len(p.fields))
	for j, f := range p.fields {
		switch x := f.Data().(type) {
		case []int64:
			row[j] = strconv.FormatInt(x[i], 10)
		case []float64:
			row[j] = strconv.FormatFloat(x[i], 'g', -1, 64)
		default:
			panic(fmt.Sprintf("Internal error: field '%s' has unsupported " +
				"type %T.", f.Name(), x))
		}
	}
	return row
}

// WriteCSV writes p as CSV with a header row of field names.
func WriteCSV(w io.Writer, p *Particles) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(p.Names()); err != nil { return err }
	for i := 0; i < p.Len(); i++ {
		if err := cw.Write(p.Row(i)); err != nil { return err }
	}
	cw.Flush()
	return cw.Error()
}
