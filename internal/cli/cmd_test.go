package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/driverlog/internal/domain"
	"github.com/alexanderramin/driverlog/internal/intelligence"
	"github.com/alexanderramin/driverlog/internal/repository"
	"github.com/alexanderramin/driverlog/internal/service"
	"github.com/alexanderramin/driverlog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires an App over an in-memory store, non-interactive.
func testApp(t *testing.T) *App {
	t.Helper()
	store := testutil.NewMemoryKVStore(repository.ErrNotFound)
	ledger := service.NewLedgerService(context.Background(), repository.NewKVLedgerRepo(store))
	return &App{
		Ledger:        ledger,
		IsInteractive: func() bool { return false },
		Now:           func() time.Time { return time.Date(2024, 3, 15, 20, 0, 0, 0, time.UTC) },
	}
}

func seedShifts(t *testing.T, app *App, dates ...string) []string {
	t.Helper()
	ids := make([]string, 0, len(dates))
	for _, d := range dates {
		rec, err := app.Ledger.AddRecord(context.Background(), testutil.NewTestRecord(d))
		require.NoError(t, err)
		ids = append(ids, rec.ID)
	}
	return ids
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	output, err := executeCmd(t, testApp(t))
	require.NoError(t, err)
	assert.Contains(t, output, "driverlog")
	assert.Contains(t, output, "dashboard")
}

// --- log add ---

func TestLogAdd_FromFlags(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "log", "add",
		"--start", "08:00", "--end", "18:00",
		"--odo-start", "1000", "--odo-end", "1140",
		"--uber", "250", "--ninety-nine", "90", "--trips", "15",
		"--extra", "20", "--notes", "  feriado ")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged shift")
	assert.Contains(t, out, "15/03/2024")

	records := app.Ledger.Records(context.Background())
	require.Len(t, records, 1)
	r := records[0]
	assert.Equal(t, "2024-03-15", r.Date, "date defaults to today")
	assert.Equal(t, 5.89, r.FuelPriceSnapshot, "fuel price defaults to settings")
	assert.Equal(t, 14.0, r.FuelEfficiencySnapshot)
	assert.Equal(t, 15, r.TripCount)
	assert.Equal(t, "feriado", r.Notes)
}

func TestLogAdd_ContinuesOdometer(t *testing.T) {
	app := testApp(t)
	seedShifts(t, app, "2024-03-14")

	_, err := executeCmd(t, app, "log", "add", "--date", "2024-03-15",
		"--start", "09:00", "--end", "12:00", "--odo-end", "10180", "--uber", "90")
	require.NoError(t, err)

	records := app.Ledger.Records(context.Background())
	require.Len(t, records, 2)
	assert.Equal(t, 10120.0, records[1].OdometerStart)
	assert.Equal(t, 10180.0, records[1].OdometerEnd)
}

func TestLogAdd_InvalidTime(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "log", "add", "--start", "8h", "--end", "18:00")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidTime)
	assert.Empty(t, app.Ledger.Records(context.Background()))
}

// --- log list / show / remove ---

func TestLogList(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "log", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No shifts logged yet")

	seedShifts(t, app, "2024-03-10", "2024-03-12", "2024-03-11")
	out, err = executeCmd(t, app, "log", "list", "-n", "2")
	require.NoError(t, err)
	assert.NotContains(t, out, "10/03/2024")
	assert.Less(t, strings.Index(out, "12/03/2024"), strings.Index(out, "11/03/2024"), "entry order is kept")
}

func TestLogShow_ByPrefix(t *testing.T) {
	app := testApp(t)
	ids := seedShifts(t, app, "2024-03-10")

	out, err := executeCmd(t, app, "log", "show", ids[0][:8])
	require.NoError(t, err)
	assert.Contains(t, out, ids[0])
	assert.Contains(t, out, "R$ 240,00")

	_, err = executeCmd(t, app, "log", "show", "zzzz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record not found")
}

func TestLogRemove(t *testing.T) {
	app := testApp(t)
	ids := seedShifts(t, app, "2024-03-10", "2024-03-11")

	_, err := executeCmd(t, app, "log", "remove", ids[0])
	require.Error(t, err, "non-interactive removal needs --yes")
	assert.Len(t, app.Ledger.Records(context.Background()), 2)

	out, err := executeCmd(t, app, "log", "rm", ids[0], "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted shift")

	records := app.Ledger.Records(context.Background())
	require.Len(t, records, 1)
	assert.Equal(t, ids[1], records[0].ID)
}

// --- history / dashboard ---

func TestHistory_PlainNewestFirst(t *testing.T) {
	app := testApp(t)
	seedShifts(t, app, "2024-03-10", "2024-03-12", "2024-03-11")

	out, err := executeCmd(t, app, "history")
	require.NoError(t, err)
	i12 := strings.Index(out, "12/03/2024")
	i11 := strings.Index(out, "11/03/2024")
	i10 := strings.Index(out, "10/03/2024")
	assert.True(t, i12 < i11 && i11 < i10, "history is sorted by date descending")

	out, err = executeCmd(t, app, "history", "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "12/03/2024")
	assert.NotContains(t, out, "11/03/2024")
	assert.Contains(t, out, "TOTALS")
}

func TestDashboard(t *testing.T) {
	app := testApp(t)
	seedShifts(t, app, "2024-03-10", "2024-03-11")

	out, err := executeCmd(t, app, "dashboard", "--last", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Olá, Motorista")
	assert.Contains(t, out, "R$ 480,00")
	assert.Contains(t, out, "11/03")
	assert.NotContains(t, out, "10/03 ")

	_, err = executeCmd(t, app, "dashboard", "--last", "0")
	assert.Error(t, err)
}

// --- settings ---

func TestSettings_ShowAndSet(t *testing.T) {
	app := testApp(t)
	seedShifts(t, app, "2024-03-10")

	out, err := executeCmd(t, app, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Motorista")

	out, err = executeCmd(t, app, "settings", "set", "--name", "João", "--fuel-price", "6.19")
	require.NoError(t, err)
	assert.Contains(t, out, "João")

	s := app.Ledger.Settings(context.Background())
	assert.Equal(t, "João", s.DriverName)
	assert.Equal(t, 6.19, s.DefaultFuelPrice)
	assert.Equal(t, 14.0, s.CarConsumption)

	assert.Equal(t, 6.0, app.Ledger.Records(context.Background())[0].FuelPriceSnapshot,
		"existing snapshots are untouched")

	_, err = executeCmd(t, app, "settings", "set", "--consumption", "0")
	require.ErrorIs(t, err, domain.ErrInvalidEfficiency)

	_, err = executeCmd(t, app, "settings", "set")
	assert.Error(t, err)
}

// --- coach ---

type fixedCoach struct{ report *intelligence.CoachReport }

func (c fixedCoach) Analyze(context.Context, []domain.WorkRecord) *intelligence.CoachReport {
	return c.report
}

func TestCoach_WithoutClient(t *testing.T) {
	app := testApp(t)
	seedShifts(t, app, "2024-03-10", "2024-03-11", "2024-03-12")

	out, err := executeCmd(t, app, "coach")
	require.NoError(t, err)
	assert.Contains(t, out, "Chave da API")
}

func TestCoach_PrintsReport(t *testing.T) {
	app := testApp(t)
	app.Coach = fixedCoach{report: &intelligence.CoachReport{Text: "Rode mais à noite.", Source: intelligence.SourceLLM}}

	out, err := executeCmd(t, app, "coach")
	require.NoError(t, err)
	assert.Contains(t, out, "Rode mais à noite.")
}

// --- export / import ---

func TestExportImport_RoundTrip(t *testing.T) {
	src := testApp(t)
	seedShifts(t, src, "2024-03-10", "2024-03-11")
	_, err := executeCmd(t, src, "settings", "set", "--name", "Bia")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "backup.json")
	_, err = executeCmd(t, src, "export", "--out", path)
	require.NoError(t, err)

	dst := testApp(t)
	out, err := executeCmd(t, dst, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 shifts")

	ctx := context.Background()
	assert.Equal(t, src.Ledger.Records(ctx), dst.Ledger.Records(ctx))
	assert.Equal(t, "Bia", dst.Ledger.Settings(ctx).DriverName)
}

func TestExport_CSVAndYAML(t *testing.T) {
	app := testApp(t)
	ids := seedShifts(t, app, "2024-03-10")

	out, err := executeCmd(t, app, "export", "--format", "csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "id,date,start_time"))
	assert.True(t, strings.HasPrefix(lines[1], ids[0]+",2024-03-10,08:00,18:00,10000,10120,200,100,12,6,12,0,,"))
	assert.True(t, strings.HasSuffix(lines[1], ",240.00,24.00,0.50"))

	out, err = executeCmd(t, app, "export", "-f", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "driver_name: Motorista")
	assert.Contains(t, out, "odometer_end: 10120")

	_, err = executeCmd(t, app, "export", "-f", "xml")
	assert.Error(t, err)
}

func TestImport_BrowserArray(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "driverLogs.json")
	data := `[{"id":"1710000000000","date":"2024-03-09","startTime":"07:30","endTime":"15:30",
		"odometerStart":52000,"odometerEnd":52150,"earningsUber":210.5,"earnings99":80,
		"trips":14,"fuelPrice":5.79,"fuelConsumption":13.5,"extraExpenses":12}]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	_, err := executeCmd(t, app, "import", path)
	require.NoError(t, err)

	ctx := context.Background()
	records := app.Ledger.Records(ctx)
	require.Len(t, records, 1)
	assert.Equal(t, "1710000000000", records[0].ID)
	assert.Equal(t, 210.5, records[0].EarningsPlatformA)
	assert.Equal(t, domain.DefaultSettings(), app.Ledger.Settings(ctx), "settings are kept when the file has none")
}

func TestImport_ReplaceNeedsConfirmation(t *testing.T) {
	app := testApp(t)
	existing := seedShifts(t, app, "2024-03-01")

	path := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"new","date":"2024-03-02","startTime":"08:00","endTime":"09:00","fuelConsumption":12}]`), 0o644))

	_, err := executeCmd(t, app, "import", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes or --merge")

	out, err := executeCmd(t, app, "import", path, "--merge")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 shifts")

	out, err = executeCmd(t, app, "import", path, "--merge")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 0 shifts (1 already present)")

	records := app.Ledger.Records(context.Background())
	require.Len(t, records, 2)
	assert.Equal(t, existing[0], records[0].ID)
	assert.Equal(t, "new", records[1].ID)

	_, err = executeCmd(t, app, "import", path, "--yes")
	require.NoError(t, err)
	assert.Len(t, app.Ledger.Records(context.Background()), 1)
}

func TestImport_InvalidRecordRejectsAll(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"date":"2024-03-02","startTime":"08:00","endTime":"09:00","fuelConsumption":0}]`), 0o644))

	_, err := executeCmd(t, app, "import", path)
	require.ErrorIs(t, err, service.ErrInvalidInput)
	assert.Empty(t, app.Ledger.Records(context.Background()))
}

// --- serve ---

func TestServe_StopsWhenContextEnds(t *testing.T) {
	app := testApp(t)
	root := NewRootCmd(app)
	root.SetOut(new(bytes.Buffer))
	root.SetArgs([]string{"serve", "--addr", "127.0.0.1:0"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, root.ExecuteContext(ctx))
}
