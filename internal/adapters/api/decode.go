package api

import (
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
)

type brotliReadCloser struct {
	br *brotli.Reader
	rc io.ReadCloser
}

func (b *brotliReadCloser) Read(p []byte) (int, error) {
	return b.br.Read(p)
}

func (b *brotliReadCloser) Close() error {
	return b.rc.Close()
}

// decodedBody wraps the response body according to Content-Encoding.
// The transport only decompresses transparently when it added the
// Accept-Encoding header itself, which it does not here.
func decodedBody(resp *http.Response) (io.ReadCloser, error) {
	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "gzip":
		zr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip body: %w", err)
		}
		return zr, nil
	case "br":
		return &brotliReadCloser{br: brotli.NewReader(resp.Body), rc: resp.Body}, nil
	default:
		return io.NopCloser(resp.Body), nil
	}
}
