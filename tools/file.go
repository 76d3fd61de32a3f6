package tools

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"
)

const readPreviewLimit = 500

// FileReader reads a file from the local filesystem. Missing files,
// directories and binary content come back as error text for the agent to
// observe.
type FileReader struct{}

// NewFileReader creates a file reading tool.
func NewFileReader() *FileReader { return &FileReader{} }

// Name implements the Tool interface.
func (f *FileReader) Name() string { return "FileReaderTool" }

// Description implements the Tool interface.
func (f *FileReader) Description() string {
	return "Reads content from a specified file path"
}

// Parameters implements the Tool interface.
func (f *FileReader) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"file_path": map[string]any{
				"type":        "string",
				"description": "Path to the file to read",
			},
		},
		"required": []string{"file_path"},
	}
}

// Call implements the Tool interface.
func (f *FileReader) Call(ctx context.Context, args map[string]any) (any, error) {
	path := stringArg(args, "file_path")

	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Sprintf("Error: File not found at path: %s", path), nil
	}
	if err != nil {
		return fmt.Sprintf("Error: Unexpected error when reading %s: %v", path, err), nil
	}
	if info.IsDir() {
		return fmt.Sprintf("Error: %s is a directory, not a file", path), nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrPermission) {
		return fmt.Sprintf("Error: Permission denied when trying to read %s", path), nil
	}
	if err != nil {
		return fmt.Sprintf("Error: Unexpected error when reading %s: %v", path, err), nil
	}
	if !utf8.Valid(data) {
		return fmt.Sprintf("Error: File %s could not be decoded as text (might be a binary file)", path), nil
	}

	content := string(data)
	if len(content) > readPreviewLimit {
		content = content[:readPreviewLimit] + "..."
	}
	return fmt.Sprintf("Successfully read file: %s\n\nContent:\n%s", path, content), nil
}

// FileWriter writes content to a file, creating parent directories as
// needed. Mode "a" appends instead of overwriting.
type FileWriter struct{}

// NewFileWriter creates a file writing tool.
func NewFileWriter() *FileWriter { return &FileWriter{} }

// Name implements the Tool interface.
func (f *FileWriter) Name() string { return "FileWriterTool" }

// Description implements the Tool interface.
func (f *FileWriter) Description() string {
	return "Writes content to a specified file path"
}

// Parameters implements the Tool interface.
func (f *FileWriter) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"file_path": map[string]any{
				"type":        "string",
				"description": "Path to the file to write",
			},
			"content": map[string]any{
				"type":        "string",
				"description": "The content to write to the file",
			},
			"mode": map[string]any{
				"type":        "string",
				"description": "File opening mode ('w' for write/overwrite, 'a' for append)",
				"enum":        []string{"w", "a"},
				"default":     "w",
			},
		},
		"required": []string{"file_path", "content"},
	}
}

// Call implements the Tool interface.
func (f *FileWriter) Call(ctx context.Context, args map[string]any) (any, error) {
	path := stringArg(args, "file_path")
	content := stringArg(args, "content")
	mode := stringArg(args, "mode")

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Sprintf("Error: Unexpected error when writing to %s: %v", path, err), nil
		}
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if mode == "a" {
		flags = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	}

	file, err := os.OpenFile(path, flags, 0o644)
	if errors.Is(err, os.ErrPermission) {
		return fmt.Sprintf("Error: Permission denied when trying to write to %s", path), nil
	}
	if err != nil {
		return fmt.Sprintf("Error: Unexpected error when writing to %s: %v", path, err), nil
	}
	defer file.Close()

	if _, err := file.WriteString(content); err != nil {
		return fmt.Sprintf("Error: Unexpected error when writing to %s: %v", path, err), nil
	}
	return fmt.Sprintf("Successfully wrote to file: %s", path), nil
}
