package reconcile_test

import (
	"testing"

	"student-sync/core/reconcile"
	"student-sync/core/tabular"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		row  tabular.Row
		want reconcile.Record
	}{
		{
			name: "Missing Name And Age",
			row:  tabular.Row{"name": nil, "age": nil, "city": "Metropolis"},
			want: reconcile.Record{Name: "Unknown", Age: 0, City: "Metropolis"},
		},
		{
			name: "Empty Row",
			row:  tabular.Row{},
			want: reconcile.Record{Name: "Unknown", Age: 0, City: "Unknown"},
		},
		{
			name: "Trims Text",
			row:  tabular.Row{"name": "  Ann ", "age": "20", "city": "\tOslo "},
			want: reconcile.Record{Name: "Ann", Age: 20, City: "Oslo"},
		},
		{
			name: "Blank Text Defaults",
			row:  tabular.Row{"name": "   ", "city": ""},
			want: reconcile.Record{Name: "Unknown", Age: 0, City: "Unknown"},
		},
		{
			name: "Float Age",
			row:  tabular.Row{"name": "Bob", "age": "21.0", "city": "Rome"},
			want: reconcile.Record{Name: "Bob", Age: 21, City: "Rome"},
		},
		{
			name: "Numeric Age",
			row:  tabular.Row{"name": "Cid", "age": 22, "city": "Nice"},
			want: reconcile.Record{Name: "Cid", Age: 22, City: "Nice"},
		},
		{
			name: "Garbage Age",
			row:  tabular.Row{"name": "Dee", "age": "twenty", "city": "Lyon"},
			want: reconcile.Record{Name: "Dee", Age: 0, City: "Lyon"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reconcile.Normalize(tt.row))
		})
	}
}

func TestParseMatchMode(t *testing.T) {
	mode, err := reconcile.ParseMatchMode("")
	assert.NoError(t, err)
	assert.Equal(t, reconcile.MatchExact, mode)

	mode, err = reconcile.ParseMatchMode(" Name ")
	assert.NoError(t, err)
	assert.Equal(t, reconcile.MatchName, mode)

	_, err = reconcile.ParseMatchMode("fuzzy")
	assert.Error(t, err)
}
