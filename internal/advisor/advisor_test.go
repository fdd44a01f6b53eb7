package advisor

import (
	"testing"

	"sheetviz/domain/tabular"

	"github.com/stretchr/testify/assert"
)

func textCol(name string, unique, total int) tabular.ColumnProfile {
	return tabular.ColumnProfile{Name: name, DataType: tabular.DataTypeText, UniqueCount: unique, TotalRows: total}
}

func numCol(name string, total int) tabular.ColumnProfile {
	return tabular.ColumnProfile{Name: name, DataType: tabular.DataTypeNumeric, UniqueCount: total, TotalRows: total}
}

func profileOf(cols ...tabular.ColumnProfile) ([]string, *tabular.Profile) {
	p := &tabular.Profile{Columns: cols}
	if len(cols) > 0 {
		p.TotalRows = cols[0].TotalRows
	}
	return p.Names(), p
}

func TestAdvise(t *testing.T) {
	tests := []struct {
		name string
		cols []tabular.ColumnProfile
		want tabular.ChartConfiguration
	}{
		{
			name: "one numeric and one text is a pie",
			cols: []tabular.ColumnProfile{textCol("month", 3, 10), numCol("revenue", 10)},
			want: tabular.ChartConfiguration{XAxis: "month", YAxis: []string{"revenue"}, ChartType: tabular.ChartPie},
		},
		{
			name: "categorical column preferred over near-unique",
			cols: []tabular.ColumnProfile{textCol("id", 10, 10), textCol("region", 4, 10), numCol("a", 10), numCol("b", 10)},
			want: tabular.ChartConfiguration{XAxis: "region", YAxis: []string{"a", "b"}, ChartType: tabular.ChartBar},
		},
		{
			name: "constant text column is not categorical",
			cols: []tabular.ColumnProfile{textCol("const", 1, 10), textCol("name", 9, 10), numCol("a", 10)},
			want: tabular.ChartConfiguration{XAxis: "const", YAxis: []string{"a"}, ChartType: tabular.ChartPie},
		},
		{
			name: "yAxis capped at three in column order",
			cols: []tabular.ColumnProfile{numCol("a", 5), textCol("t", 2, 5), numCol("b", 5), numCol("c", 5), numCol("d", 5)},
			want: tabular.ChartConfiguration{XAxis: "t", YAxis: []string{"a", "b", "c"}, ChartType: tabular.ChartBar},
		},
		{
			name: "no text columns falls back to first column",
			cols: []tabular.ColumnProfile{numCol("x", 5), numCol("y", 5)},
			want: tabular.ChartConfiguration{XAxis: "x", YAxis: []string{"x", "y"}, ChartType: tabular.ChartBar},
		},
		{
			name: "single numeric column only is a line",
			cols: []tabular.ColumnProfile{numCol("x", 5)},
			want: tabular.ChartConfiguration{XAxis: "x", YAxis: []string{"x"}, ChartType: tabular.ChartLine},
		},
		{
			name: "no numeric columns leaves yAxis empty",
			cols: []tabular.ColumnProfile{textCol("a", 2, 5), textCol("b", 3, 5)},
			want: tabular.ChartConfiguration{XAxis: "a", YAxis: []string{}, ChartType: tabular.ChartLine},
		},
		{
			name: "no columns",
			want: tabular.ChartConfiguration{XAxis: "", YAxis: []string{}, ChartType: tabular.ChartLine},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			columns, profile := profileOf(tt.cols...)
			got := Advise(columns, profile)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got.YAxis), DefaultMaxYAxes)
		})
	}
}

func TestAdviseIsDeterministic(t *testing.T) {
	columns, profile := profileOf(textCol("t", 2, 5), numCol("a", 5), numCol("b", 5))
	assert.Equal(t, Advise(columns, profile), Advise(columns, profile))
}

func TestAdviseUnprofiledColumnsCountAsText(t *testing.T) {
	got := Advise([]string{"mystery", "n"}, &tabular.Profile{Columns: []tabular.ColumnProfile{numCol("n", 4)}})
	assert.Equal(t, "mystery", got.XAxis)
	assert.Equal(t, tabular.ChartPie, got.ChartType)
}

func TestCustomConfig(t *testing.T) {
	columns, profile := profileOf(numCol("a", 4), numCol("b", 4), numCol("c", 4))
	got := NewChartAdvisor(Config{MaxYAxes: 1}).Advise(columns, profile)
	assert.Equal(t, []string{"a"}, got.YAxis)
	assert.Equal(t, tabular.ChartBar, got.ChartType)
}
