package tabular

// DataType is the coarse classification of a column.
type DataType string

const (
	DataTypeNumeric DataType = "numeric"
	DataTypeText    DataType = "text"
)

// ColumnProfile summarizes one column across every record.
// Min, Max, Avg, Median and StdDev are set only for numeric columns.
type ColumnProfile struct {
	Name          string   `json:"name" yaml:"name"`
	TotalRows     int      `json:"totalRows" yaml:"totalRows"`
	NonEmptyCount int      `json:"nonEmptyCount" yaml:"nonEmptyCount"`
	NumericCount  int      `json:"numericCount" yaml:"numericCount"`
	DataType      DataType `json:"dataType" yaml:"dataType"`
	UniqueCount   int      `json:"uniqueCount" yaml:"uniqueCount"`
	SampleValues  []any    `json:"sampleValues" yaml:"sampleValues"`
	Min           *float64 `json:"min" yaml:"min"`
	Max           *float64 `json:"max" yaml:"max"`
	Avg           *float64 `json:"avg" yaml:"avg"`
	Median        *float64 `json:"median,omitempty" yaml:"median,omitempty"`
	StdDev        *float64 `json:"stdDev,omitempty" yaml:"stdDev,omitempty"`
}

// IsNumeric reports whether the column was classified numeric.
func (c ColumnProfile) IsNumeric() bool {
	return c.DataType == DataTypeNumeric
}

// IsText reports whether the column was classified text.
func (c ColumnProfile) IsText() bool {
	return c.DataType == DataTypeText
}

// Profile is the ordered set of column profiles for a table.
type Profile struct {
	TotalRows int             `json:"totalRows" yaml:"totalRows"`
	Columns   []ColumnProfile `json:"columns" yaml:"columns"`
}

// Column looks up a profile by column name.
func (p *Profile) Column(name string) (ColumnProfile, bool) {
	if p == nil {
		return ColumnProfile{}, false
	}
	for _, c := range p.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnProfile{}, false
}

// Names returns the profiled column names in order.
func (p *Profile) Names() []string {
	if p == nil {
		return nil
	}
	names := make([]string, len(p.Columns))
	for i, c := range p.Columns {
		names[i] = c.Name
	}
	return names
}

// NumericColumns returns the names of numeric columns in order.
func (p *Profile) NumericColumns() []string {
	return p.namesOf(DataTypeNumeric)
}

// TextColumns returns the names of text columns in order.
func (p *Profile) TextColumns() []string {
	return p.namesOf(DataTypeText)
}

func (p *Profile) namesOf(dt DataType) []string {
	if p == nil {
		return nil
	}
	var names []string
	for _, c := range p.Columns {
		if c.DataType == dt {
			names = append(names, c.Name)
		}
	}
	return names
}
