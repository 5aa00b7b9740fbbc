package model

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// FilePreview holds the first lines of a file for display purposes
type FilePreview struct {
	Lines     []string // Up to maxLines lines from the top of the file
	Total     int      // Total line count of the file
	Truncated bool     // Whether the file had more lines than were kept
	ErrorMsg  string   // Error message if file couldn't be read
}

// GetFilePreview reads the head of a file so the TUI can show a peek of it
func GetFilePreview(filePath string, maxLines int) FilePreview {
	result := FilePreview{}

	// Expand tilde in file path
	if strings.HasPrefix(filePath, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			filePath = strings.Replace(filePath, "~", home, 1)
		}
	}

	file, err := os.Open(filePath)
	if err != nil {
		result.ErrorMsg = fmt.Sprintf("Could not read file: %v", err)
		return result
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	// Generous cap so minified bundles don't kill the scanner
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		result.Total++
		if result.Total <= maxLines {
			result.Lines = append(result.Lines, scanner.Text())
		} else {
			result.Truncated = true
		}
	}

	if err := scanner.Err(); err != nil {
		result.ErrorMsg = fmt.Sprintf("Error reading file: %v", err)
		return result
	}

	return result
}
