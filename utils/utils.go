package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/cockroachdb/errors"
)

// FormatPrice renders a money amount the way the backend prices read,
// e.g. $85.00.
func FormatPrice(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// FormatHorario turns the backend's showtime timestamp into a short
// human-readable form. Unparseable values pass through untouched.
func FormatHorario(horario string) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if ts, err := time.Parse(layout, horario); err == nil {
			return ts.Format("Mon 02 Jan, 15:04")
		}
	}
	return horario
}

// WriteJSONFile writes v as indented JSON.
func WriteJSONFile(path string, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding json")
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}
