package ingest

import (
	"fmt"
	"math"

	"sheetviz/domain/core"
	"sheetviz/domain/tabular"

	"github.com/tidwall/gjson"
)

// parseJSON accepts a single object or an array of objects. Nested objects are
// flattened into parent_child keys up to maxDepth key segments; deeper objects
// and all arrays stay whole as leaf values. Columns follow document order.
func parseJSON(data []byte, maxDepth int) (*tabular.Table, error) {
	data = stripBOM(data)
	if !gjson.ValidBytes(data) {
		return nil, core.NewParseError("json", fmt.Errorf("invalid JSON document"))
	}

	root := gjson.ParseBytes(data)
	var items []gjson.Result
	switch {
	case root.IsObject():
		items = []gjson.Result{root}
	case root.IsArray():
		items = root.Array()
	default:
		return nil, core.NewParseError("json", fmt.Errorf("expected an object or an array of objects, got %s", root.Type))
	}

	f := &flattener{maxDepth: maxDepth, seen: make(map[string]bool)}
	records := make([]tabular.Record, 0, len(items))
	for i, item := range items {
		if !item.IsObject() {
			return nil, core.NewParseError("json", fmt.Errorf("element %d is %s, not an object", i, item.Type))
		}
		record := make(tabular.Record)
		f.flatten(record, "", item, 1)
		if len(record) == 0 {
			continue
		}
		records = append(records, record)
	}

	return tabular.NewTable(tabular.FormatJSON, f.columns, records), nil
}

type flattener struct {
	maxDepth int
	seen     map[string]bool
	columns  []string
}

func (f *flattener) flatten(record tabular.Record, prefix string, obj gjson.Result, depth int) {
	obj.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		if prefix != "" {
			name = prefix + "_" + name
		}
		if value.IsObject() && depth < f.maxDepth {
			f.flatten(record, name, value, depth+1)
			return true
		}
		record[name] = leafValue(value)
		if !f.seen[name] {
			f.seen[name] = true
			f.columns = append(f.columns, name)
		}
		return true
	})
}

func leafValue(v gjson.Result) any {
	switch v.Type {
	case gjson.Null:
		return nil
	case gjson.False:
		return false
	case gjson.True:
		return true
	case gjson.Number:
		return finiteOrNil(v.Float())
	case gjson.String:
		return v.String()
	default:
		return dropNonFinite(v.Value())
	}
}

// Numbers that overflow float64 become nil, the way JSON.stringify writes them.
func finiteOrNil(f float64) any {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil
	}
	return f
}

func dropNonFinite(v any) any {
	switch x := v.(type) {
	case float64:
		return finiteOrNil(x)
	case []interface{}:
		for i := range x {
			x[i] = dropNonFinite(x[i])
		}
	case map[string]interface{}:
		for k := range x {
			x[k] = dropNonFinite(x[k])
		}
	}
	return v
}
