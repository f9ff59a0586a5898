package output

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestComparison())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(out)
	for _, want := range []string{
		"提前还款测算结果",
		"[B-base] EPI / partial / reduce_term，已还 24/360 期，提前还款 ¥200,000.00",
		"原月供/首期月供: ¥5,307.27",
		"提前还前剩余本金: ¥969,000.13",
		"剩余期数: 2",
		"违约金回本: 提前还款后第 3 期",
		"2026-02-28",
		"    - 注意",
		"推荐方案: B-base",
		"  - note one",
	} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in console output, got:\n%s", want, content)
		}
	}
}

func TestCSVSummarizerDeterministicOrder(t *testing.T) {
	out, err := CSVSummarizer{}.Format(buildTestComparison())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines (header+2 rows), got %d", len(lines))
	}
	if !strings.HasPrefix(lines[1], "A-lower-payment,") || !strings.HasPrefix(lines[2], "B-base,") {
		t.Fatalf("rows not sorted deterministically: %v", lines)
	}
	if !strings.Contains(lines[2], ",969000.13,") {
		t.Fatalf("expected half-up rounded remaining principal, got %s", lines[2])
	}
}

func TestCSVScheduleExporter(t *testing.T) {
	out, err := CSVScheduleExporter{}.Format(buildTestComparison())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	want := []string{
		"Scenario,Period,DueDate,Payment,PrincipalPaid,InterestPaid,Balance",
		"B-base,1,2026-01-31,5307.27,2000.00,3307.26,767000.12",
		"B-base,2,2026-02-28,770000.50,767000.12,3000.38,0.00",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %v", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestJSONFormatter_Comparison(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestComparison())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded struct {
		Scenarios []struct {
			Name    string            `json:"name"`
			Summary map[string]any    `json:"summary"`
			Inputs  map[string]any    `json:"inputs"`
			Rows    []json.RawMessage `json:"schedule_after"`
		} `json:"scenarios"`
		Recommendation struct {
			ScenarioName string `json:"scenario_name"`
		} `json:"recommendation"`
		Notes []string `json:"notes"`
	}
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, out)
	}
	if len(decoded.Scenarios) != 2 {
		t.Fatalf("expected 2 scenarios, got %d", len(decoded.Scenarios))
	}
	if got := decoded.Scenarios[0].Summary["original_monthly_payment"]; got != "5307.27" {
		t.Fatalf("expected 2-dp string amount, got %#v", got)
	}
	if got := decoded.Scenarios[0].Summary["new_term_months_remaining"]; got != float64(2) {
		t.Fatalf("expected integer term, got %#v", got)
	}
	if decoded.Recommendation.ScenarioName != "B-base" {
		t.Fatalf("unexpected recommendation %q", decoded.Recommendation.ScenarioName)
	}
	if len(decoded.Notes) != 1 {
		t.Fatalf("expected notes, got %v", decoded.Notes)
	}
}

func TestJSONFormatter_SingleScenario(t *testing.T) {
	results := buildTestComparison()
	results.Scenarios = results.Scenarios[:1]

	out, err := JSONFormatter{Pretty: true}.Format(results)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(out), "\n  \"summary\": {") {
		t.Fatalf("expected indented bare result, got:\n%s", out)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	for _, key := range []string{"inputs", "summary", "warnings", "schedule_after"} {
		if _, ok := decoded[key]; !ok {
			t.Fatalf("missing key %q in %s", key, out)
		}
	}
	var inputs map[string]any
	if err := json.Unmarshal(decoded["inputs"], &inputs); err != nil {
		t.Fatalf("invalid inputs: %v", err)
	}
	if inputs["principal"] != "1000000" || inputs["paid_months"] != float64(24) || inputs["strategy"] != "reduce_term" {
		t.Fatalf("unexpected normalized inputs %v", inputs)
	}
	if _, ok := decoded["scenarios"]; ok {
		t.Fatalf("single scenario should not be wrapped")
	}
}

func TestFormatterRegistry(t *testing.T) {
	cases := map[string]string{
		"console":      "console",
		" TEXT ":       "console",
		"csv-summary":  "csv",
		"schedule":     "schedule-csv",
		"json":         "json",
		"pretty-json":  "json-pretty",
		"schedule-csv": "schedule-csv",
	}
	for in, want := range cases {
		f := GetFormatterByName(in)
		if f == nil {
			t.Fatalf("no formatter for %q", in)
		}
		if f.Name() != want {
			t.Fatalf("GetFormatterByName(%q) = %s, want %s", in, f.Name(), want)
		}
	}

	if _, err := LookupFormatter("html"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}

	names := AvailableFormatterNames()
	if strings.Join(names, ",") != "console,csv,json,json-pretty,schedule-csv" {
		t.Fatalf("unexpected formatter names %v", names)
	}
	if len(AvailableFormatAliases()) != len(aliasMap) {
		t.Fatalf("aliases incomplete")
	}
}

func TestFileExtension(t *testing.T) {
	cases := map[string]string{"console": "txt", "csv": "csv", "schedule": "csv", "json-pretty": "json"}
	for in, want := range cases {
		if got := FileExtension(in); got != want {
			t.Fatalf("FileExtension(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGenerateReport(t *testing.T) {
	dir := t.TempDir()
	files, err := GenerateReport(buildTestComparison(), "all", dir)
	if err != nil {
		t.Fatalf("GenerateReport error: %v", err)
	}
	if len(files) != 4 {
		t.Fatalf("expected 4 files, got %v", files)
	}
	for _, f := range files {
		if filepath.Dir(f) != dir {
			t.Fatalf("file %s written outside %s", f, dir)
		}
		if _, err := os.Stat(f); err != nil {
			t.Fatalf("missing report file: %v", err)
		}
	}

	if _, err := GenerateReport(buildTestComparison(), "pdf", dir); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}
