// Package loader reads an exported AgriScan simulation log into memory.
// The engine itself never opens files; everything downstream operates on
// the record collection returned here.
package loader

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/agriscan/agriview/internal/types"
	"go.uber.org/zap"
)

// Load reads a simulation_logs.json export and decodes it into telemetry
// records. A missing or syntactically broken file is an error; an empty
// collection is not — downstream components handle it as "no data".
func Load(path string, logger *zap.SugaredLogger) ([]types.TelemetryRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read simulation log %s: %w", path, err)
	}

	var records []types.TelemetryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse simulation log %s: %w", path, err)
	}

	if logger != nil {
		logger.Infof("loaded %d records from %s", len(records), path)
	}
	return records, nil
}
