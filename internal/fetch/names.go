// Package fetch downloads Bluebook PDFs and manages the local library of
// YYYY_MM.pdf files.
package fetch

import (
	"errors"
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrNoPublicationDate is returned when a file name does not encode a year
// and month.
var ErrNoPublicationDate = errors.New("no publication date in file name")

var (
	canonicalName = regexp.MustCompile(`^(\d{4})_(\d{2})$`)
	monthLongYear = regexp.MustCompile(`(\d{2})[_-](\d{4})`)
	monthTwoYear  = regexp.MustCompile(`(\d{2})[_-](\d{2})`)
)

// YearMonth extracts the publication year and month from a published file
// name such as "Blue_Book_02_2024.pdf", "Blue-Book-02-2024.pdf" or
// "Blue_Book_02_24.pdf". Names already in YYYY_MM form are accepted as is.
func YearMonth(filename string) (year, month int, err error) {
	base := strings.TrimSuffix(path.Base(filename), path.Ext(filename))

	var y, m string
	if g := canonicalName.FindStringSubmatch(base); g != nil {
		y, m = g[1], g[2]
	} else if g := monthLongYear.FindStringSubmatch(base); g != nil {
		y, m = g[2], g[1]
	} else if g := monthTwoYear.FindStringSubmatch(base); g != nil {
		y, m = "20"+g[2], g[1]
	} else {
		return 0, 0, fmt.Errorf("%s: %w", filename, ErrNoPublicationDate)
	}

	year, _ = strconv.Atoi(y)
	month, _ = strconv.Atoi(m)
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("%s: month %02d: %w", filename, month, ErrNoPublicationDate)
	}
	return year, month, nil
}

// CanonicalName returns the library file name for a publication date.
func CanonicalName(year, month int) string {
	return fmt.Sprintf("%04d_%02d.pdf", year, month)
}

// DisplayName turns "2024_02.pdf" into "February, 2024 RIDOT Bluebook".
// Names that do not parse are returned unchanged.
func DisplayName(file string) string {
	base := strings.TrimSuffix(file, ".pdf")
	g := canonicalName.FindStringSubmatch(base)
	if g == nil {
		return file
	}
	t, err := time.Parse("2006_01", g[1]+"_"+g[2])
	if err != nil {
		return file
	}
	return fmt.Sprintf("%s, %d RIDOT Bluebook", t.Month(), t.Year())
}
