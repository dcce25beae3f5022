// Package archive wraps a finished output file in a zip or tar.gz
// container next to the original.
package archive

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"

	"corpus/internal/core/errors"
)

const (
	FormatZip   = "zip"
	FormatTarGz = "tar.gz"
)

// SupportedFormat reports whether format names a known archive container.
func SupportedFormat(format string) bool {
	return format == FormatZip || format == FormatTarGz
}

// Create archives filePath into a sibling file named after the format and
// returns the archive path. The original file is left in place.
func Create(filePath, format string) (string, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return "", errors.Wrap(err, errors.CodeNotFound, "file to archive does not exist").
			WithContext(errors.CtxPath, filePath)
	}

	switch format {
	case FormatZip:
		archivePath := filePath + ".zip"
		if err := createZip(filePath, archivePath, info); err != nil {
			return "", err
		}
		return archivePath, nil
	case FormatTarGz:
		archivePath := filePath + ".tar.gz"
		if err := createTarGz(filePath, archivePath, info); err != nil {
			return "", err
		}
		return archivePath, nil
	default:
		return "", errors.New(errors.CodeValidationError, "unsupported archive format").
			WithContext(errors.CtxFormat, format)
	}
}

func createZip(filePath, archivePath string, info os.FileInfo) error {
	out, err := os.Create(archivePath)
	if err != nil {
		return errors.Wrap(err, errors.CodeUnwritable, "create archive").
			WithContext(errors.CtxPath, archivePath)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "build zip header")
	}
	header.Name = filepath.Base(filePath)
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "create zip entry")
	}
	if err := copyFileTo(w, filePath); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return errors.Wrap(err, errors.CodeUnwritable, "finalize zip").
			WithContext(errors.CtxPath, archivePath)
	}
	return out.Close()
}

func createTarGz(filePath, archivePath string, info os.FileInfo) error {
	out, err := os.Create(archivePath)
	if err != nil {
		return errors.Wrap(err, errors.CodeUnwritable, "create archive").
			WithContext(errors.CtxPath, archivePath)
	}
	defer out.Close()

	gw := gzip.NewWriter(out)
	tw := tar.NewWriter(gw)

	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "build tar header")
	}
	header.Name = filepath.Base(filePath)
	if err := tw.WriteHeader(header); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "write tar header")
	}
	if err := copyFileTo(tw, filePath); err != nil {
		return err
	}
	if err := tw.Close(); err != nil {
		return errors.Wrap(err, errors.CodeUnwritable, "finalize tar").
			WithContext(errors.CtxPath, archivePath)
	}
	if err := gw.Close(); err != nil {
		return errors.Wrap(err, errors.CodeUnwritable, "finalize gzip").
			WithContext(errors.CtxPath, archivePath)
	}
	return out.Close()
}

func copyFileTo(w io.Writer, filePath string) error {
	in, err := os.Open(filePath)
	if err != nil {
		return errors.Wrap(err, errors.CodeUnreadable, "open file for archiving").
			WithContext(errors.CtxPath, filePath)
	}
	defer in.Close()
	if _, err := io.Copy(w, in); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "copy into archive").
			WithContext(errors.CtxPath, filePath)
	}
	return nil
}
