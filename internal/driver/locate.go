package driver

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"pbxfmt/internal/diag"
)

const (
	// ProjectFileName is the project file inside a bundle.
	ProjectFileName = "project.pbxproj"
	// BundleExt is the extension of a project bundle directory.
	BundleExt = ".xcodeproj"
	projectFileExt = ".pbxproj"
)

// Locate resolves a command-line argument to the project file it names:
// either the file itself or a bundle directory containing ProjectFileName.
func Locate(arg string) (string, error) {
	if strings.TrimSpace(arg) == "" {
		return "", diag.New(diag.UsageError, "missing project path")
	}
	info, err := os.Stat(arg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", diag.Errorf(diag.UsageError, "%s: no such file or directory", arg)
		}
		return "", diag.Wrap(diag.IOError, err, "cannot stat %s", arg)
	}

	if info.IsDir() {
		if filepath.Ext(filepath.Clean(arg)) != BundleExt {
			return "", diag.Errorf(diag.UsageError, "%s: directory is not a %s bundle", arg, BundleExt)
		}
		path := filepath.Join(arg, ProjectFileName)
		inner, err := os.Stat(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			return "", diag.Errorf(diag.UsageError, "%s: bundle has no %s", arg, ProjectFileName)
		case err != nil:
			return "", diag.Wrap(diag.IOError, err, "cannot stat %s", path)
		case inner.IsDir():
			return "", diag.Errorf(diag.UsageError, "%s is a directory", path)
		}
		return path, nil
	}

	if filepath.Ext(arg) != projectFileExt {
		return "", diag.Errorf(diag.UsageError, "%s: unsupported file extension %q (want %s or a %s bundle)",
			arg, filepath.Ext(arg), projectFileExt, BundleExt)
	}
	return arg, nil
}
