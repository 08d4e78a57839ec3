package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type jsonExport struct {
	ExportedAt string `json:"exported_at"`
	Subject    string `json:"subject"`
	Days       int    `json:"days"`
	LastReset  string `json:"last_reset,omitempty"`
	Record     int    `json:"record"`
}

func ToJSON(s Snapshot, path string) error {
	export := jsonExport{
		ExportedAt: s.ExportedAt.UTC().Format(time.RFC3339),
		Subject:    s.Subject,
		Days:       s.State.Days,
		LastReset:  s.lastReset(),
		Record:     s.State.Record,
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
