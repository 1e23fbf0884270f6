package gen

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/teranos/witgen/config"
	"github.com/teranos/witgen/errors"
	"github.com/teranos/witgen/logger"
	"github.com/teranos/witgen/output"
)

// Difference is a generated file whose content differs from the file on disk
type Difference struct {
	File string // path relative to the api directory
	New  bool   // the file does not exist on disk yet
	Diff string // unified diff from the file on disk to the generated file
}

// CheckResult holds the result of a check run
type CheckResult struct {
	UpToDate    bool
	Differences []Difference
}

// Err returns ErrOutOfDate when any file differs
func (r *CheckResult) Err() error {
	if r.UpToDate {
		return nil
	}
	return errors.WithHint(
		errors.Mark(errors.Newf("%d generated file(s) out of date", len(r.Differences)), errors.ErrOutOfDate),
		"run witgen to regenerate the api directory")
}

// Check generates into a temporary copy of the api directory and compares
// the result with the api directory. Nothing under the root is modified.
func Check(ctx context.Context, cfg *config.Config) (*CheckResult, error) {
	log := logger.ComponentLogger("witgen.gen")

	tempDir, err := os.MkdirTemp("", "witgen-check-*")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create temp directory")
	}
	defer os.RemoveAll(tempDir)

	apiDir := cfg.APIPath()
	if err := copyWitFiles(apiDir, tempDir); err != nil {
		return nil, err
	}

	checkCfg := *cfg
	checkCfg.APIDir = tempDir
	log.Debugw("Generating into temp directory", logger.FieldPath, tempDir)

	if _, err := Run(ctx, &checkCfg, output.Disk{}); err != nil {
		return nil, errors.Wrap(err, "generation failed")
	}

	diffs, err := CompareDirectories(tempDir, apiDir)
	if err != nil {
		return nil, err
	}

	return &CheckResult{
		UpToDate:    len(diffs) == 0,
		Differences: diffs,
	}, nil
}

// CompareDirectories compares every .wit file of generatedDir with the file
// of the same name in existingDir.
func CompareDirectories(generatedDir, existingDir string) ([]Difference, error) {
	names, err := witFiles(generatedDir)
	if err != nil {
		return nil, err
	}

	var diffs []Difference
	for _, name := range names {
		generated, err := os.ReadFile(filepath.Join(generatedDir, name))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", name)
		}

		existing, err := os.ReadFile(filepath.Join(existingDir, name))
		isNew := os.IsNotExist(err)
		if err != nil && !isNew {
			return nil, errors.Wrapf(err, "failed to read %s", filepath.Join(existingDir, name))
		}

		if !isNew && bytes.Equal(generated, existing) {
			continue
		}

		diff, err := unifiedDiff(name, string(existing), string(generated))
		if err != nil {
			return nil, err
		}
		diffs = append(diffs, Difference{File: name, New: isNew, Diff: diff})
	}
	return diffs, nil
}

func unifiedDiff(name, existing, generated string) (string, error) {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(existing),
		B:        difflib.SplitLines(generated),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  3,
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to diff %s", name)
	}
	return diff, nil
}

// copyWitFiles copies the .wit files of src into dst. A missing src is empty.
func copyWitFiles(src, dst string) error {
	names, err := witFiles(src)
	if err != nil {
		return err
	}
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(src, name))
		if err != nil {
			return errors.Wrapf(err, "failed to read %s", name)
		}
		if err := os.WriteFile(filepath.Join(dst, name), data, output.FilePermissions); err != nil {
			return errors.WrapWrite(err, filepath.Join(dst, name))
		}
	}
	return nil
}

func witFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to read %s", dir)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".wit") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
