package jsonrow

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/dshills/datacursor/internal/datasource"
)

// ParseDataset reads a dataset document of the form
//
//	{"columns": [{"name": "id", "caption": "ID"}, ...],
//	 "rows":    [{"id": 1, ...}, ...]}
//
// and returns the schema plus decoded records. A column without a caption
// falls back to its name.
func ParseDataset(data []byte) (datasource.Columns, []datasource.Record, error) {
	if !gjson.ValidBytes(data) {
		return nil, nil, fmt.Errorf("jsonrow: invalid dataset document")
	}
	doc := gjson.ParseBytes(data)

	colList := doc.Get("columns")
	if !colList.IsArray() {
		return nil, nil, fmt.Errorf("jsonrow: dataset has no columns array")
	}

	var columns datasource.Columns
	for _, col := range colList.Array() {
		name := col.Get("name").String()
		if name == "" {
			return nil, nil, fmt.Errorf("jsonrow: column %d has no name", len(columns))
		}
		caption := col.Get("caption").String()
		if caption == "" {
			caption = name
		}
		columns = append(columns, datasource.Column{Name: name, Caption: caption})
	}

	var rows []datasource.Record
	for _, row := range doc.Get("rows").Array() {
		if !row.IsObject() {
			return nil, nil, fmt.Errorf("jsonrow: row %d is not an object", len(rows))
		}
		rows = append(rows, decode([]byte(row.Raw)))
	}

	return columns, rows, nil
}
