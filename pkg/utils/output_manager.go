package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// OutputManager places files produced by API jobs under a per-job directory.
type OutputManager struct {
	BaseOutputDir string
}

// NewOutputManager creates a new output manager
func NewOutputManager(baseOutputDir string) *OutputManager {
	return &OutputManager{
		BaseOutputDir: baseOutputDir,
	}
}

// CreateJobOutputDir creates the directory for a job's outputs
func (om *OutputManager) CreateJobOutputDir(jobID string) (string, error) {
	jobDir := filepath.Join(om.BaseOutputDir, jobID)

	if err := os.MkdirAll(jobDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create job output directory: %w", err)
	}

	return jobDir, nil
}

// GetOutputFilePath generates a full path for an output file inside the job directory
func (om *OutputManager) GetOutputFilePath(jobID, fileName string) (string, error) {
	jobDir, err := om.CreateJobOutputDir(jobID)
	if err != nil {
		return "", err
	}

	// Strip any directory part so the file stays inside jobDir
	cleanFileName := filepath.Base(fileName)

	return filepath.Join(jobDir, cleanFileName), nil
}

// GetFileSize returns the size of a file in bytes
func (om *OutputManager) GetFileSize(filePath string) (int64, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return 0, err
	}
	return fileInfo.Size(), nil
}
