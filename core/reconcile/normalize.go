package reconcile

import (
	"strings"

	"student-sync/core/tabular"
	"student-sync/core/utils"
)

// Normalize maps a raw row to a Record. It never fails: absent, null or
// blank name and city become DefaultText, and an absent or unparsable age
// becomes zero.
func Normalize(row tabular.Row) Record {
	return Record{
		Name: textOrDefault(row["name"]),
		Age:  utils.ToInt(row["age"]),
		City: textOrDefault(row["city"]),
	}
}

func textOrDefault(val any) string {
	s := strings.TrimSpace(utils.ToString(val))
	if s == "" {
		return DefaultText
	}
	return s
}
