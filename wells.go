package prep

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

var ErrNoDataRows = errors.New("no data rows parsed")

// Wells maps a well identifier to its ordered production readings.
type Wells map[string][]float64

// Names returns the well identifiers in sorted order. Iterating wells through
// this keeps windowing and shuffling reproducible for a fixed seed.
func (w Wells) Names() []string {
	names := make([]string, 0, len(w))
	for name := range w {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadWells reads every CSV file in cfg.Dir and groups production readings
// by well name. Files with no parseable rows are skipped.
func LoadWells(cfg DataConfig) (Wells, error) {
	dir := strings.TrimSpace(cfg.Dir)
	if dir == "" {
		return nil, fmt.Errorf("data dir is empty")
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data path is not a directory: %s", dir)
	}

	files, err := listCSVFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no csv files found in %s", dir)
	}

	wells := make(Wells)
	loaded := 0
	for _, filePath := range files {
		if err := loadWellsFromCSV(filePath, cfg, wells); err != nil {
			if errors.Is(err, ErrNoDataRows) {
				continue
			}
			return nil, err
		}
		loaded++
	}
	if loaded == 0 || len(wells) == 0 {
		return nil, fmt.Errorf("no data loaded from %s", dir)
	}
	return wells, nil
}

func listCSVFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.ToLower(filepath.Ext(name)) != ".csv" {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	return files, nil
}

func loadWellsFromCSV(path string, cfg DataConfig, wells Wells) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	minColumns := cfg.NameColumn
	if cfg.ValueColumn > minColumns {
		minColumns = cfg.ValueColumn
	}
	minColumns++

	rows := 0
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if first {
			first = false
			if cfg.SkipHeader {
				continue
			}
		}
		parts := strings.Split(line, ",")
		if len(parts) < minColumns {
			continue
		}
		name, ok := parseCSVField(parts[cfg.NameColumn])
		if !ok {
			continue
		}
		value, ok := parseCSVFloat(parts[cfg.ValueColumn])
		if !ok {
			continue
		}
		wells[name] = append(wells[name], value)
		rows++
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", path, ErrNoDataRows)
	}
	return nil
}

func parseCSVField(raw string) (string, bool) {
	value := strings.TrimSpace(raw)
	value = strings.Trim(value, "\"")
	if value == "" {
		return "", false
	}
	return value, true
}

func parseCSVFloat(raw string) (float64, bool) {
	value := strings.TrimSpace(raw)
	value = strings.Trim(value, "\"")
	if value == "" {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}
