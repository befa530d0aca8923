package v1

import (
	"fmt"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// stringFilters adds the filters for the name of the resource and the
// free text search.
//
// An empty name parameter that is set filters for resources without name.
func stringFilters(query *gorm.DB, setFields []string, name, search string) *gorm.DB {
	if name != "" {
		query = query.Where("name LIKE ?", fmt.Sprintf("%%%s%%", name))
	} else if slices.Contains(setFields, "Name") {
		query = query.Where("name = ''")
	}

	if search != "" {
		query = query.Where("name LIKE ?", fmt.Sprintf("%%%s%%", search))
	}

	return query
}

// queryLimit returns the limit set in the query, or the default of 50.
func queryLimit(setFields []string, value int) int {
	if slices.Contains(setFields, "Limit") {
		return value
	}
	return 50
}
