// ABOUTME: Diary directory validation for the setup wizard.
// ABOUTME: Checks that the directory exists or can be created and accepts new files.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// ValidateDiaryDir checks that dir can hold the diary: it is created if
// missing, must be a directory, and must accept a new file. The context
// allows cancellation when the user quits during validation.
func ValidateDiaryDir(ctx context.Context, dir string) error {
	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("directory is empty")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to access directory: %w", err)
	case !info.IsDir():
		return fmt.Errorf("%s is not a directory", dir)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".minidiary-write-*")
	if err != nil {
		return fmt.Errorf("directory is not writable: %w", err)
	}
	name := tmp.Name()
	_ = tmp.Close()
	if err := os.Remove(name); err != nil {
		return fmt.Errorf("failed to clean up write test file: %w", err)
	}

	return ctx.Err()
}
