package cli

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexanderramin/driverlog/internal/domain"
	"github.com/alexanderramin/driverlog/internal/stats"
	"gopkg.in/yaml.v3"
)

const backupVersion = 1

// Backup is the export document. Import also accepts a bare JSON array of
// records, which is what the browser version of the ledger exported.
type Backup struct {
	Version    int                 `json:"version" yaml:"version"`
	ExportedAt string              `json:"exportedAt,omitempty" yaml:"exported_at,omitempty"`
	Settings   *domain.Settings    `json:"settings,omitempty" yaml:"settings,omitempty"`
	Records    []domain.WorkRecord `json:"records" yaml:"records"`
}

// Export formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatYAML = "yaml"
)

func writeBackup(w io.Writer, format string, b Backup) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(b)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(b); err != nil {
			return err
		}
		return enc.Close()
	case FormatCSV:
		return writeCSV(w, b.Records)
	default:
		return fmt.Errorf("unknown format %q (want %s, %s or %s)", format, FormatJSON, FormatCSV, FormatYAML)
	}
}

var csvHeader = []string{
	"id", "date", "start_time", "end_time", "odometer_start", "odometer_end",
	"earnings_uber", "earnings_99", "trips", "fuel_price", "fuel_consumption",
	"extra_expenses", "notes",
	"hours", "distance_km", "gross", "fuel_cost", "total_expenses", "net",
	"net_per_hour", "cost_per_km",
}

// writeCSV writes one row per record with the derived figures appended, for
// spreadsheets.
func writeCSV(w io.Writer, records []domain.WorkRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	raw := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	money := func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

	for _, r := range records {
		d := stats.Derive(r)
		row := []string{
			r.ID, r.Date, r.StartTime, r.EndTime,
			raw(r.OdometerStart), raw(r.OdometerEnd),
			raw(r.EarningsPlatformA), raw(r.EarningsPlatformB),
			strconv.Itoa(r.TripCount),
			raw(r.FuelPriceSnapshot), raw(r.FuelEfficiencySnapshot),
			raw(r.ExtraExpenses), r.Notes,
			money(d.HoursWorked), money(d.DistanceDriven), money(d.GrossEarnings),
			money(d.FuelCost), money(d.TotalExpenses), money(d.NetEarnings),
			money(d.HourlyRate), money(d.CostPerDistance),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// parseBackup reads a JSON backup, a bare JSON record array or, for .yaml
// and .yml names, a YAML backup.
func parseBackup(name string, data []byte) (Backup, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		var b Backup
		if err := yaml.Unmarshal(data, &b); err != nil {
			return Backup{}, fmt.Errorf("parsing YAML backup: %w", err)
		}
		return b, nil
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Backup{}, fmt.Errorf("backup is empty")
	}
	if trimmed[0] == '[' {
		var records []domain.WorkRecord
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return Backup{}, fmt.Errorf("parsing record array: %w", err)
		}
		return Backup{Records: records}, nil
	}

	var b Backup
	if err := json.Unmarshal(trimmed, &b); err != nil {
		return Backup{}, fmt.Errorf("parsing JSON backup: %w", err)
	}
	if b.Version > backupVersion {
		return Backup{}, fmt.Errorf("backup version %d is newer than this build supports (%d)", b.Version, backupVersion)
	}
	return b, nil
}
