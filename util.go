package main

import (
	"os"
	"path/filepath"
	"strings"
)

// Returns true if the directory is empty or does not exist.
func IsDirectoryEmpty(path string) bool {
	files, err := os.ReadDir(path)
	if err != nil {
		return os.IsNotExist(err)
	}
	return len(files) == 0
}

func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Csv file the located points are persisted to.
//
// Csv inputs are updated in place, other inputs get a csv next to them.
func LocatedPointsFile(points string) string {
	ext := filepath.Ext(points)
	if strings.ToLower(ext) == ".csv" {
		return points
	}
	return strings.TrimSuffix(points, ext) + ".located.csv"
}
