// Package encoder turns a user-selected image file into a base64 data URL.
package encoder

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const sniffLen = 512

// Preview describes a selected file before it is encoded.
type Preview struct {
	Name string
	MIME string
	Size int64
}

// Encoder reads image files from a filesystem.
type Encoder struct {
	fs afero.Fs
}

// New creates an encoder over fs. A nil fs means the OS filesystem.
func New(fs afero.Fs) *Encoder {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Encoder{fs: fs}
}

// Encode reads the whole file and returns data:<mime>;base64,<payload>.
func (e *Encoder) Encode(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f, err := e.fs.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("failed to read image %s: %w", path, err)
	}

	return DataURL(detectMIME(path, data), data), nil
}

// Inspect returns name, size and MIME type without reading the full file.
func (e *Encoder) Inspect(path string) (Preview, error) {
	info, err := e.fs.Stat(path)
	if err != nil {
		return Preview{}, fmt.Errorf("failed to stat image %s: %w", path, err)
	}
	if info.IsDir() {
		return Preview{}, fmt.Errorf("failed to inspect image %s: is a directory", path)
	}

	f, err := e.fs.Open(path)
	if err != nil {
		return Preview{}, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return Preview{}, fmt.Errorf("failed to read image %s: %w", path, err)
	}

	return Preview{
		Name: filepath.Base(path),
		MIME: detectMIME(path, head[:n]),
		Size: info.Size(),
	}, nil
}

// DataURL formats data as a base64 data URL.
func DataURL(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// EncodedLen is the data URL length for an n-byte payload of the given MIME type.
func EncodedLen(mimeType string, n int64) int64 {
	return int64(len("data:")+len(mimeType)+len(";base64,")) + int64(base64.StdEncoding.EncodedLen(int(n)))
}

func detectMIME(path string, head []byte) string {
	if len(head) > 0 {
		sniffed := http.DetectContentType(head)
		if !strings.HasPrefix(sniffed, "application/octet-stream") && !strings.HasPrefix(sniffed, "text/plain") {
			return stripParams(sniffed)
		}
	}

	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); byExt != "" {
		return stripParams(byExt)
	}

	return "application/octet-stream"
}

func stripParams(mimeType string) string {
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		return strings.TrimSpace(mimeType[:i])
	}
	return mimeType
}
