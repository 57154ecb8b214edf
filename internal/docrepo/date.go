package docrepo

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ivoa/adsharvest/internal/record"
)

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var dateRE = regexp.MustCompile(
	`(\d{1,2})\s*(` + strings.Join(monthNames, "|") + `)\s*(\d{4})`)

// parseSubheadDate extracts the first "<day> <MonthName> <year>" date from
// a landing-page sub-heading.
func parseSubheadDate(s string) (record.Date, error) {
	m := dateRE.FindStringSubmatch(s)
	if m == nil {
		return record.Date{}, fmt.Errorf("no date visible in %q", s)
	}
	day, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[3])
	month := 0
	for i, name := range monthNames {
		if name == m[2] {
			month = i + 1
			break
		}
	}
	return record.Date{Year: year, Month: month, Day: day}, nil
}
