package storage

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/attractor/internal/dynamo"
)

var sampleLines = [][]dynamo.State3{
	{{X: 0.1}, {X: 0.098, Y: 0.0056}},
	{{X: -3, Y: 4.25, Z: 1e-9}},
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(RunMetadata{
		System:   "lorenz",
		Strategy: "window",
		Seed:     42,
		StepSize: 0.002,
		Params:   map[string]float64{"rho": 28},
	}, sampleLines)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Seed != 42 || meta.System != "lorenz" {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Lines != 2 || meta.Points != 3 {
		t.Errorf("expected 2 lines / 3 points, got %d / %d", meta.Lines, meta.Points)
	}
	if meta.Params["rho"] != 28 {
		t.Errorf("expected rho 28, got %f", meta.Params["rho"])
	}

	lines, err := st.LoadLines(runID)
	if err != nil {
		t.Fatalf("load lines failed: %v", err)
	}
	if len(lines) != len(sampleLines) {
		t.Fatalf("expected %d lines, got %d", len(sampleLines), len(lines))
	}
	for i := range sampleLines {
		for j := range sampleLines[i] {
			if !lines[i][j].Equal(sampleLines[i][j]) {
				t.Errorf("point %d/%d: got %v want %v", i, j, lines[i][j], sampleLines[i][j])
			}
		}
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	for i := 0; i < 3; i++ {
		meta := RunMetadata{System: "lorenz", Timestamp: base.Add(time.Duration(i) * time.Hour)}
		if _, err := st.Save(meta, sampleLines); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}
	// stray files are ignored
	os.WriteFile(filepath.Join(tmpDir, "notes.txt"), []byte("x"), 0644)
	os.MkdirAll(filepath.Join(tmpDir, "empty"), 0755)

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	if !runs[0].Timestamp.Equal(base.Add(2 * time.Hour)) {
		t.Errorf("expected newest first, got %v", runs[0].Timestamp)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runID, err := st.Save(RunMetadata{System: "lorenz"}, sampleLines)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	for _, name := range []string{"metadata.json", "points.csv"} {
		if _, err := os.Stat(filepath.Join(runDir, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestLoadLinesRejectsBadRows(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	runDir := filepath.Join(tmpDir, "broken")
	os.MkdirAll(runDir, 0755)
	os.WriteFile(filepath.Join(runDir, "points.csv"), []byte("line,index,x,y,z\n0,0,1,2,zz\n"), 0644)

	if _, err := st.LoadLines("broken"); err == nil {
		t.Error("expected parse error")
	}
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportJSON(&buf, RunMetadata{System: "lorenz", Frames: 7}, sampleLines); err != nil {
		t.Fatal(err)
	}

	var got ExportData
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.Frames != 7 || got.Lines != 2 || got.Points != 3 {
		t.Errorf("unexpected header %+v", got.RunMetadata)
	}
	if math.Abs(got.Data[1][0][1]-4.25) > 0 {
		t.Errorf("unexpected data %v", got.Data)
	}
}
