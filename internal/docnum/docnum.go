// Package docnum formats and parses sequential document numbers of the
// form {PREFIX}-{YYYY}{MM}-{NNNN}. The sequence restarts per document type
// and calendar month; the repository layer claims numbers inside the same
// transaction as the document insert so concurrent writers cannot collide.
package docnum

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type DocumentType string

const (
	TypeQuote    DocumentType = "quote"
	TypeContract DocumentType = "contract"
)

var prefixes = map[DocumentType]string{
	TypeQuote:    "DEV",
	TypeContract: "CTR",
}

// Prefix returns the document prefix (DEV for quotes, CTR for contracts).
func Prefix(t DocumentType) (string, error) {
	p, ok := prefixes[t]
	if !ok {
		return "", fmt.Errorf("unknown document type %q", t)
	}
	return p, nil
}

// MonthPrefix returns the "PREFIX-YYYYMM-" part for a type and date, the
// scan key for finding the last number issued in that month.
func MonthPrefix(t DocumentType, date time.Time) (string, error) {
	p, err := Prefix(t)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s-", p, date.Format("200601")), nil
}

// Format builds a full document number from a type, date and sequence.
func Format(t DocumentType, date time.Time, seq int) (string, error) {
	mp, err := MonthPrefix(t, date)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%04d", mp, seq), nil
}

// NextAfter returns the number following the lexicographically last
// existing one for the month. An empty last number starts the sequence
// at 1.
func NextAfter(t DocumentType, date time.Time, last string) (string, error) {
	seq := 1
	if last != "" {
		s, err := sequenceOf(last)
		if err != nil {
			return "", err
		}
		seq = s + 1
	}
	return Format(t, date, seq)
}

func sequenceOf(number string) (int, error) {
	idx := strings.LastIndex(number, "-")
	if idx < 0 || idx == len(number)-1 {
		return 0, fmt.Errorf("malformed document number %q", number)
	}
	seq, err := strconv.Atoi(number[idx+1:])
	if err != nil {
		return 0, fmt.Errorf("malformed document number %q: %v", number, err)
	}
	return seq, nil
}
