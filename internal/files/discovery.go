package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery finds order exports under a base directory.
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// findByExtension lists files under dir whose lowercased name carries one
// of the given extensions, sorted by modification time (oldest first).
func (d *Discovery) findByExtension(dir string, exts ...string) ([]FileInfo, error) {
	fullPath := dir
	if !filepath.IsAbs(dir) {
		fullPath = filepath.Join(d.basePath, dir)
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := strings.ToLower(entry.Name())
		matched := false
		for _, ext := range exts {
			if strings.HasSuffix(name, ext) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, entry.Name()),
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].ModTime.Before(files[j].ModTime)
	})

	return files, nil
}

// FindCSVFiles finds all CSV files in the specified directory
func (d *Discovery) FindCSVFiles(dir string) ([]FileInfo, error) {
	return d.findByExtension(dir, ".csv")
}

// FindExcelFiles finds all Excel files in the specified directory
func (d *Discovery) FindExcelFiles(dir string) ([]FileInfo, error) {
	return d.findByExtension(dir, ".xlsx", ".xls")
}

// FindOrdersExports lists candidate orders exports (CSV or Excel) in the
// base directory, skipping the users reference table.
func (d *Discovery) FindOrdersExports() ([]FileInfo, error) {
	files, err := d.findByExtension(".", ".csv", ".xlsx", ".xls")
	if err != nil {
		return nil, err
	}

	var exports []FileInfo
	for _, f := range files {
		if strings.HasPrefix(strings.ToLower(f.Name), "users") {
			continue
		}
		exports = append(exports, f)
	}
	return exports, nil
}

// LatestOrdersExport returns the most recently modified orders export in
// the base directory. The second return is false when none exists.
func (d *Discovery) LatestOrdersExport() (FileInfo, bool, error) {
	exports, err := d.FindOrdersExports()
	if err != nil {
		return FileInfo{}, false, err
	}
	latest, ok := GetLatestFile(exports)
	return latest, ok, nil
}

// GetLatestFile returns the most recently modified file from a list
func GetLatestFile(files []FileInfo) (FileInfo, bool) {
	if len(files) == 0 {
		return FileInfo{}, false
	}

	latest := files[0]
	for _, file := range files[1:] {
		if file.ModTime.After(latest.ModTime) {
			latest = file
		}
	}

	return latest, true
}

// IsExcelExport reports whether the path looks like an Excel workbook.
func IsExcelExport(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".xlsx" || ext == ".xls"
}
