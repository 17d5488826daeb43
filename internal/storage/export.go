package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/attractor/internal/dynamo"
)

type ExportData struct {
	RunMetadata
	Data [][][3]float64 `json:"data"`
}

// ExportJSON writes a run as one JSON document.
func ExportJSON(w io.Writer, meta RunMetadata, lines [][]dynamo.State3) error {
	data := ExportData{RunMetadata: meta, Data: make([][][3]float64, len(lines))}
	data.Lines = len(lines)
	data.Points = 0
	for i, l := range lines {
		pts := make([][3]float64, len(l))
		for j, p := range l {
			pts[j] = [3]float64{p.X, p.Y, p.Z}
		}
		data.Data[i] = pts
		data.Points += len(l)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
