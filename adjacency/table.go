package adjacency

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	. "github.com/ttpr0/go-adjacency/util"
	"golang.org/x/exp/slog"
)

//*******************************************
// adjacency table
//*******************************************

type AdjacencyTable struct {
	Accumulators []string
	Edges        List[AdjacencyEdge]
}

func (self *AdjacencyTable) Length() int {
	return self.Edges.Length()
}

type _JSONRow struct {
	OriginID      string             `json:"origin_id"`
	DestinationID string             `json:"destination_id"`
	Distance      float64            `json:"distance"`
	Accumulated   map[string]float64 `json:"accumulated,omitempty"`
}

type _JSONTable struct {
	Accumulators []string   `json:"accumulators"`
	Rows         []_JSONRow `json:"rows"`
}

func (self *AdjacencyTable) _ToJSON() _JSONTable {
	rows := make([]_JSONRow, self.Edges.Length())
	for i, edge := range self.Edges {
		rows[i] = _JSONRow{
			OriginID:      edge.OriginID,
			DestinationID: edge.DestinationID,
			Distance:      edge.Distance,
		}
		if len(self.Accumulators) > 0 {
			rows[i].Accumulated = make(map[string]float64, len(self.Accumulators))
			for j, name := range self.Accumulators {
				rows[i].Accumulated[name] = _Accumulated(edge, j)
			}
		}
	}
	return _JSONTable{
		Accumulators: self.Accumulators,
		Rows:         rows,
	}
}

func (self *AdjacencyTable) MarshalJSON() ([]byte, error) {
	return json.Marshal(self._ToJSON())
}

func _Accumulated(edge AdjacencyEdge, index int) float64 {
	if index < len(edge.Accumulated) {
		return edge.Accumulated[index]
	}
	return 0
}

//*******************************************
// write tables
//*******************************************

func _TempPath(path string) string {
	return path + "~"
}

// Removes the table and a left over temporary table.
func RemoveStaleOutputs(output_location string, table_name string) error {
	path := filepath.Join(output_location, table_name)
	for _, file := range []string{path, _TempPath(path)} {
		err := os.Remove(file)
		if err == nil {
			slog.Info(fmt.Sprintf("removed stale output %s", file))
			continue
		}
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

// Writes the table as csv or json depending on the extension of table_name.
//
// The table is written to a temporary file first and renamed into place.
func WriteTable(table *AdjacencyTable, output_location string, table_name string) (string, error) {
	path := filepath.Join(output_location, table_name)
	temp := _TempPath(path)
	var err error
	switch strings.ToLower(filepath.Ext(table_name)) {
	case ".json":
		err = WriteJSONToFile(table._ToJSON(), temp)
	case ".csv", "":
		err = _WriteCSVTable(table, temp)
	default:
		return "", fmt.Errorf("%w: unsupported table format %s", ErrInvalidInput, table_name)
	}
	if err != nil {
		os.Remove(temp)
		return "", fmt.Errorf("failed to write table %s: %w", path, err)
	}
	if err := os.Rename(temp, path); err != nil {
		return "", err
	}
	slog.Info(fmt.Sprintf("wrote %v adjacency edges to %s", table.Length(), path))
	return path, nil
}

func _WriteCSVTable(table *AdjacencyTable, file string) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	header := append([]string{"origin_id", "destination_id", "distance"}, table.Accumulators...)
	if err := writer.Write(header); err != nil {
		return err
	}
	record := make([]string, len(header))
	for _, edge := range table.Edges {
		record[0] = edge.OriginID
		record[1] = edge.DestinationID
		record[2] = strconv.FormatFloat(edge.Distance, 'g', -1, 64)
		for j := range table.Accumulators {
			record[3+j] = strconv.FormatFloat(_Accumulated(edge, j), 'g', -1, 64)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	return f.Close()
}
