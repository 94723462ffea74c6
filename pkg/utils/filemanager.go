// =============================================================================
// Purchase Order Generator - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the generator:
//   - Output directory management
//   - Output file naming
//   - Whole-file writes (single attempt, overwrite)
//
// WRITE STRATEGY:
//   The dataset is serialized in memory and written with one call. An
//   existing file is truncated and overwritten. There is no retry and no
//   cleanup of a partially written file.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for the generator.
type FileManager struct {
	// OutputDir is the directory where output files are placed.
	OutputDir string

	// FileMode is the permission used for created files.
	FileMode os.FileMode

	// now is the clock used for timestamp placeholders.
	now func() time.Time
}

// NewFileManager creates a new FileManager writing into outputDir.
func NewFileManager(outputDir string) *FileManager {
	return &FileManager{
		OutputDir: outputDir,
		FileMode:  0o644,
		now:       time.Now,
	}
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureOutputDir creates the output directory if it doesn't exist.
func (fm *FileManager) EnsureOutputDir() error {
	if err := os.MkdirAll(fm.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", fm.OutputDir, err)
	}
	return nil
}

// =============================================================================
// OUTPUT FILES
// =============================================================================

// Path resolves a file name inside the output directory.
// The result is absolute when the output directory can be resolved.
func (fm *FileManager) Path(name string) string {
	path := filepath.Join(fm.OutputDir, name)
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// Write writes data to name inside the output directory, replacing any
// existing file.
//
// RETURNS:
//   - The path written to.
//   - An error wrapping the underlying cause if the write fails.
func (fm *FileManager) Write(name string, data []byte) (string, error) {
	if err := fm.EnsureOutputDir(); err != nil {
		return "", err
	}

	path := fm.Path(name)
	if err := os.WriteFile(path, data, fm.FileMode); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	return path, nil
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// OutputFileName expands placeholders in a file name format.
//
// PARAMETERS:
//   - format: The format string for the file name.
//     Placeholders:
//     {uuid}      - A random UUID
//     {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//     {date}      - Current date (YYYYMMDD)
//     {count}     - Number of records
//   - count: The number of records being written.
//
// EXAMPLE:
//
//	format: "po_{date}_{count}.csv"
//	output: "po_20260314_500.csv"
func (fm *FileManager) OutputFileName(format string, count int) string {
	now := fm.now()

	replacements := []string{
		"{timestamp}", now.Format("20060102_150405"),
		"{date}", now.Format("20060102"),
		"{count}", strconv.Itoa(count),
	}
	if strings.Contains(format, "{uuid}") {
		replacements = append(replacements, "{uuid}", uuid.New().String())
	}

	return strings.NewReplacer(replacements...).Replace(format)
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// ReplaceExt swaps the extension of name for ext (e.g. ".xlsx").
func ReplaceExt(name, ext string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ext
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// GetFileSize returns the size of a file in bytes.
func GetFileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
