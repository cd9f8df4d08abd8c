// Package audit keeps a JSONL history of catalog scans for a project.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// ScanRecord summarises one catalog scan.
type ScanRecord struct {
	Timestamp time.Time      `json:"timestamp"`
	ScanID    string         `json:"scan_id"`
	SessionID string         `json:"session_id,omitempty"`
	Root      string         `json:"root"`
	Commit    string         `json:"commit,omitempty"`
	Assets    int            `json:"assets"`
	Scripts   int            `json:"scripts"`
	Skipped   int            `json:"skipped"`
	TypeCount map[string]int `json:"type_counts,omitempty"`
	Duration  string         `json:"duration"`
}

type AuditLog struct {
	logPath string
}

// NewAuditLog returns the history log for root. It lives next to the other
// project state in .octconnect/.
func NewAuditLog(root string) *AuditLog {
	return &AuditLog{logPath: filepath.Join(root, ".octconnect", "history.jsonl")}
}

// Path is the log file location.
func (a *AuditLog) Path() string { return a.logPath }

// LoadHistory returns records newest first. Malformed lines are skipped.
func (a *AuditLog) LoadHistory() ([]ScanRecord, error) {
	f, err := os.Open(a.logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open scan history: %w", err)
	}
	defer f.Close()

	var records []ScanRecord
	decoder := json.NewDecoder(f)
	for decoder.More() {
		var record ScanRecord
		if err := decoder.Decode(&record); err != nil {
			break
		}
		records = append(records, record)
	}
	reverse(records)
	return records, nil
}

func (a *AuditLog) LogScan(record ScanRecord) error {
	if record.ScanID == "" {
		record.ScanID = uuid.NewString()
	}
	if err := os.MkdirAll(filepath.Dir(a.logPath), 0o755); err != nil {
		return fmt.Errorf("failed to create history dir: %w", err)
	}
	f, err := os.OpenFile(a.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open scan history: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(record); err != nil {
		return fmt.Errorf("failed to write scan record: %w", err)
	}
	return nil
}

// DeleteRecord removes the record at index, counted newest first as
// returned by LoadHistory.
func (a *AuditLog) DeleteRecord(index int) error {
	records, err := a.LoadHistory()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(records) {
		return fmt.Errorf("invalid index: %d", index)
	}
	records = append(records[:index], records[index+1:]...)
	reverse(records)

	f, err := os.Create(a.logPath)
	if err != nil {
		return fmt.Errorf("failed to rewrite scan history: %w", err)
	}
	defer f.Close()
	encoder := json.NewEncoder(f)
	for _, record := range records {
		if err := encoder.Encode(record); err != nil {
			return fmt.Errorf("failed to write scan record: %w", err)
		}
	}
	return nil
}

// Summary is the subset of a catalog CreateScanRecord needs.
type Summary struct {
	Root      string
	SessionID string
	Commit    string
	TypeNames []string
	Scripts   int
	Skipped   int
	Duration  time.Duration
}

// CreateScanRecord builds a record, counting assets per type name.
func CreateScanRecord(s Summary) ScanRecord {
	counts := make(map[string]int)
	for _, n := range s.TypeNames {
		counts[n]++
	}
	return ScanRecord{
		Timestamp: time.Now(),
		SessionID: s.SessionID,
		Root:      s.Root,
		Commit:    s.Commit,
		Assets:    len(s.TypeNames),
		Scripts:   s.Scripts,
		Skipped:   s.Skipped,
		TypeCount: counts,
		Duration:  s.Duration.String(),
	}
}

func reverse(records []ScanRecord) {
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
}
