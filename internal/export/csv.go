package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"
)

var csvHeader = []string{"Days", "Last Reset", "Record", "Subject", "Exported At"}

func ToCSV(s Snapshot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write(csvHeader); err != nil {
		return err
	}
	row := []string{
		strconv.Itoa(s.State.Days),
		s.lastReset(),
		strconv.Itoa(s.State.Record),
		s.Subject,
		s.ExportedAt.UTC().Format(time.RFC3339),
	}
	if err := w.Write(row); err != nil {
		return err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}
