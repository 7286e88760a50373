package dofinance

import (
	"context"
	"errors"
	"io/fs"
	"os"
)

// FileTransport keeps the sync text in a local file. It is the transport
// used for tests and for syncing through a file shared out of band (the
// remote notes-field transport proper lives outside this engine).
type FileTransport struct {
	Path string
}

func (t *FileTransport) Read(_ context.Context) (string, bool, error) {
	content, err := os.ReadFile(t.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(content), true, nil
}

func (t *FileTransport) Write(_ context.Context, text string) error {
	return os.WriteFile(t.Path, []byte(text), 0644)
}

var _ Transport = (*FileTransport)(nil)
