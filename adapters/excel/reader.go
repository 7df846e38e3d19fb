package excel

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"maldash/domain/core"
	"maldash/internal"
	"maldash/internal/dataset"
	"maldash/internal/errors"
)

// DataReader ingests surveillance tables from Excel or CSV files into
// datasets. The first row is the header; every other row is one
// observation. Cells that do not parse as numbers become NaN and are
// dropped later at pair extraction, so a few bad cells never block a file.
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	logger   *internal.Logger
}

// NewDataReader creates a reader for the given file, inferring the format
// from the extension.
func NewDataReader(filePath string) *DataReader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &DataReader{
		filePath: filePath,
		fileType: fileType,
		logger:   internal.NewLogger("DataReader"),
	}
}

// ReadDataset reads the file into a dataset named after it.
func (r *DataReader) ReadDataset() (*dataset.Dataset, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.IngestionError(fmt.Sprintf("data file not found: %s", r.filePath))
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return nil, errors.IngestionError(fmt.Sprintf("unsupported file type: %s", r.fileType))
	}
	if err != nil {
		return nil, err
	}

	return r.buildDataset(rows)
}

func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open Excel file %s", r.filePath)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read sheet %s", sheet)
	}
	return rows, nil
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open CSV file %s", r.filePath)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse CSV file %s", r.filePath)
	}
	return rows, nil
}

func (r *DataReader) buildDataset(rows [][]string) (*dataset.Dataset, error) {
	if len(rows) < 2 {
		return nil, errors.IngestionError("file needs a header row and at least one data row")
	}

	headers := rows[0]
	dataRows := rows[1:]

	name := strings.TrimSuffix(filepath.Base(r.filePath), filepath.Ext(r.filePath))
	ds := dataset.New(name)

	skipped := 0
	for col, header := range headers {
		key := core.MetricKey(strings.TrimSpace(header))
		if key.String() == "" {
			skipped++
			continue
		}

		values := make([]float64, len(dataRows))
		numeric := 0
		for i, row := range dataRows {
			values[i] = math.NaN()
			if col < len(row) {
				if v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64); err == nil {
					values[i] = v
					numeric++
				}
			}
		}

		// Columns that are mostly text (labels, dates) are not metrics.
		if numeric*2 < len(dataRows) {
			r.logger.Debug("skipping non-numeric column %q (%d/%d numeric)",
				key, numeric, len(dataRows))
			skipped++
			continue
		}
		if err := ds.AddColumn(key, values); err != nil {
			return nil, errors.Wrapf(err, "column %s", key)
		}
	}

	if ds.MetricCount() == 0 {
		return nil, errors.IngestionError("no numeric metric columns found")
	}

	r.logger.Info("Ingested %s: %d metrics, %d rows (%d columns skipped)",
		r.filePath, ds.MetricCount(), ds.RowCount(), skipped)
	return ds, nil
}
