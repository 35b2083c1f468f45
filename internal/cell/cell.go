package cell

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/teemow/gslides/internal/errs"
)

// MaxColumn is the largest column number expressible with two letters.
const MaxColumn = 26 + 26*26

var cellPattern = regexp.MustCompile(`^([A-Z]{1,2})([0-9]+)$`)

var plainSheetName = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Address is a 1-based spreadsheet cell position.
type Address struct {
	Row    int
	Column int
}

// String returns the A1 name of the address.
func (a Address) String() string {
	letters, err := ColumnLetters(a.Column)
	if err != nil {
		return fmt.Sprintf("R%dC%d", a.Row, a.Column)
	}
	return letters + strconv.Itoa(a.Row)
}

// ColumnLetters converts a 1-based column number into its letters.
func ColumnLetters(n int) (string, error) {
	if n < 1 || n > MaxColumn {
		return "", fmt.Errorf("%w: column %d is outside 1..%d", errs.ErrInvalidConfig, n, MaxColumn)
	}
	if n <= 26 {
		return string(rune('A' + n - 1)), nil
	}
	n -= 27
	return string([]rune{rune('A' + n/26), rune('A' + n%26)}), nil
}

// ColumnNumber converts column letters into a 1-based column number.
func ColumnNumber(letters string) (int, error) {
	letters = strings.ToUpper(letters)
	if len(letters) == 0 || len(letters) > 2 {
		return 0, fmt.Errorf("%w: column %q must be one or two letters", errs.ErrInvalidConfig, letters)
	}
	n := 0
	for _, r := range letters {
		if r < 'A' || r > 'Z' {
			return 0, fmt.Errorf("%w: column %q must only contain letters", errs.ErrInvalidConfig, letters)
		}
		n = n*26 + int(r-'A') + 1
	}
	return n, nil
}

// Validate checks that name is a well formed cell name and returns it
// upper-cased.
func Validate(name string) (string, error) {
	upper := strings.ToUpper(name)
	if !cellPattern.MatchString(upper) {
		return "", fmt.Errorf("%w: %q is not a valid cell name", errs.ErrInvalidConfig, name)
	}
	return upper, nil
}

// Parse converts a cell name such as "C10" into its address.
func Parse(name string) (Address, error) {
	upper, err := Validate(name)
	if err != nil {
		return Address{}, err
	}
	m := cellPattern.FindStringSubmatch(upper)
	col, err := ColumnNumber(m[1])
	if err != nil {
		return Address{}, err
	}
	row, err := strconv.Atoi(m[2])
	if err != nil || row < 1 {
		return Address{}, fmt.Errorf("%w: %q has no valid row", errs.ErrInvalidConfig, name)
	}
	return Address{Row: row, Column: col}, nil
}

// Range renders an A1 range such as "Sheet1!A1:D5".
func Range(sheet string, from, to Address) (string, error) {
	start, err := ColumnLetters(from.Column)
	if err != nil {
		return "", err
	}
	end, err := ColumnLetters(to.Column)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s!%s%d:%s%d", QuoteSheet(sheet), start, from.Row, end, to.Row), nil
}

// QuoteSheet quotes a sheet name for use in an A1 range when needed.
func QuoteSheet(sheet string) string {
	if plainSheetName.MatchString(sheet) {
		return sheet
	}
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
}
