package helper

import (
	"fmt"
	"strconv"
)

// Names used by BuildMySQLDistanceField when none are given.
const (
	DefaultLngColumn     = "longitude"
	DefaultLatColumn     = "latitude"
	DefaultDistanceAlias = "distance"
)

// BuildMySQLDistanceField returns a MySQL select field for the great-circle
// distance in meters between (lng, lat) and the row's coordinate columns,
// aliased as as. Empty names fall back to DefaultLngColumn,
// DefaultLatColumn and DefaultDistanceAlias. Names are inserted verbatim and
// must be trusted.
func BuildMySQLDistanceField(lng, lat float64, lngName, latName, as string) string {
	if as == "" {
		as = DefaultDistanceAlias
	}
	return MySQLDistanceExpr(lng, lat, lngName, latName) + " AS " + as
}

// MySQLDistanceExpr is BuildMySQLDistanceField without the alias, for use in
// WHERE and ORDER BY clauses.
func MySQLDistanceExpr(lng, lat float64, lngName, latName string) string {
	if lngName == "" {
		lngName = DefaultLngColumn
	}
	if latName == "" {
		latName = DefaultLatColumn
	}

	lngStr := strconv.FormatFloat(lng, 'f', -1, 64)
	latStr := strconv.FormatFloat(lat, 'f', -1, 64)

	return fmt.Sprintf(
		"ROUND(6378.138*2*ASIN(SQRT(POW(SIN((%[2]s*PI()/180-%[4]s*PI()/180)/2),2)"+
			"+COS(%[2]s*PI()/180)*COS(%[4]s*PI()/180)"+
			"*POW(SIN((%[1]s*PI()/180-%[3]s*PI()/180)/2),2)))*1000)",
		lngStr, latStr, lngName, latName)
}
