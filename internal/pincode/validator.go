package pincode

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/Lixing-Zhang/mulghai-point/backend/internal/models"
)

var pincodePattern = regexp.MustCompile(`^\d{6}$`)

const (
	msgServiceable   = "✓ Delivery available to %s"
	msgUnserviceable = "✗ Sorry, we don't deliver to this area yet"
)

// Validator answers whether the shop delivers to a pincode
type Validator struct {
	defaults map[string]string
	areas    map[string]string
	files    []string
	mu       sync.RWMutex
}

// fileLoadResult holds the result of loading a single area file
type fileLoadResult struct {
	index int
	areas map[string]string
	err   error
}

// ValidCode reports whether code has the six-digit pincode shape
func ValidCode(code string) bool {
	return pincodePattern.MatchString(code)
}

// DefaultAreas returns the built-in delivery areas around Phagwara
func DefaultAreas() []models.ServiceArea {
	return []models.ServiceArea{
		{Pincode: "144411", Area: "LPU Campus (Chaheru, Phagwara)"},
		{Pincode: "144402", Area: "LPU vicinity / Law Gate / General LPU"},
		{Pincode: "144401", Area: "Phagwara city and surrounding areas"},
		{Pincode: "144407", Area: "Nearby locality: Domeli"},
	}
}

// NewValidator creates a validator serving the given areas
func NewValidator(areas []models.ServiceArea) *Validator {
	defaults := make(map[string]string, len(areas))
	for _, a := range areas {
		defaults[a.Pincode] = a.Area
	}
	return &Validator{
		defaults: defaults,
		areas:    copyAreas(defaults),
	}
}

// LoadFromFiles loads extra "pincode,area" tables concurrently and merges them,
// in path order, over the configured areas. Files ending in .gz are decompressed.
// Returns error if any file fails to load; the current table is then kept.
func (v *Validator) LoadFromFiles(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return fmt.Errorf("no file paths provided")
	}

	resultChan := make(chan fileLoadResult, len(paths))
	var wg sync.WaitGroup

	for i, path := range paths {
		wg.Add(1)
		go func(index int, filePath string) {
			defer wg.Done()

			areas, err := loadFromFile(ctx, filePath)
			resultChan <- fileLoadResult{
				index: index,
				areas: areas,
				err:   err,
			}
		}(i, path)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make([]fileLoadResult, len(paths))
	for result := range resultChan {
		results[result.index] = result
	}

	for i, result := range results {
		if result.err != nil {
			return fmt.Errorf("failed to load area file %d (%s): %w", i+1, paths[i], result.err)
		}
	}

	merged := copyAreas(v.defaults)
	for _, result := range results {
		for code, area := range result.areas {
			merged[code] = area
		}
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	v.areas = merged
	v.files = append([]string(nil), paths...)

	return nil
}

func loadFromFile(ctx context.Context, path string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gzReader, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzReader.Close()
		r = gzReader
	}

	return parseAreas(r)
}

// parseAreas reads "pincode,area" lines. Blank lines and lines starting with # are skipped.
func parseAreas(r io.Reader) (map[string]string, error) {
	areas := make(map[string]string)
	scanner := bufio.NewScanner(r)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		code, area, ok := strings.Cut(line, ",")
		code = strings.TrimSpace(code)
		area = strings.TrimSpace(area)
		if !ok || area == "" {
			return nil, fmt.Errorf("line %d: expected \"pincode,area\"", lineNo)
		}
		if !ValidCode(code) {
			return nil, fmt.Errorf("line %d: invalid pincode %q", lineNo, code)
		}
		areas[code] = area
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	return areas, nil
}

// Lookup returns the area name for an exact pincode match
func (v *Validator) Lookup(code string) (string, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	area, ok := v.areas[code]
	return area, ok
}

// Check returns the lookup result with the message shown to the shopper
func (v *Validator) Check(code string) models.PincodeCheck {
	area, ok := v.Lookup(code)
	if !ok {
		return models.PincodeCheck{Pincode: code, Valid: false, Message: msgUnserviceable}
	}
	return models.PincodeCheck{
		Pincode: code,
		Valid:   true,
		Area:    area,
		Message: fmt.Sprintf(msgServiceable, area),
	}
}

// Areas lists the delivery table sorted by pincode
func (v *Validator) Areas() []models.ServiceArea {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make([]models.ServiceArea, 0, len(v.areas))
	for code, area := range v.areas {
		out = append(out, models.ServiceArea{Pincode: code, Area: area})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Pincode < out[j].Pincode })
	return out
}

// GetStats returns statistics about the loaded delivery table
func (v *Validator) GetStats() map[string]interface{} {
	v.mu.RLock()
	defer v.mu.RUnlock()

	stats := make(map[string]interface{})
	stats["total_areas"] = len(v.areas)
	stats["default_areas"] = len(v.defaults)
	stats["file_paths"] = append([]string{}, v.files...)

	return stats
}

func copyAreas(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
