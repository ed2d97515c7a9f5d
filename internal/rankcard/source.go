package rankcard

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/youruser/rankcard/internal/util"
)

type sourceKind int

const (
	kindNone sourceKind = iota
	kindFile
	kindBuffer
	kindURL
)

// Source is a closed union over the three ways a card image can be supplied:
// a local file path, an in-memory byte stream, or a remote URL. A zero Source
// is invalid and rejected by Resolve.
type Source struct {
	kind sourceKind
	path string
	url  string
	buf  io.Reader
}

// FileSource references an image on the local filesystem.
func FileSource(path string) Source {
	return Source{kind: kindFile, path: path}
}

// URLSource references an image to fetch over HTTP.
func URLSource(url string) Source {
	return Source{kind: kindURL, url: url}
}

// BufferSource wraps an already-loaded byte stream. The reader must also be
// an io.Seeker or Resolve rejects it.
func BufferSource(r io.Reader) Source {
	return Source{kind: kindBuffer, buf: r}
}

// SourceFromString classifies a string reference the way callers write them:
// anything with an http prefix is a URL, everything else is a file path.
func SourceFromString(s string) Source {
	if strings.HasPrefix(s, "http") {
		return URLSource(s)
	}
	return FileSource(s)
}

func (s Source) String() string {
	switch s.kind {
	case kindFile:
		return "file:" + s.path
	case kindBuffer:
		return "buffer"
	case kindURL:
		return s.url
	default:
		return "none"
	}
}

// FetchFunc fetches the bytes behind a URL and reports the HTTP status code.
type FetchFunc func(ctx context.Context, url string) ([]byte, int, error)

// Resolver turns a Source into a decoded image. The network fetch is
// injected so tests and callers can swap transports; one fetch happens per
// URL source, with no reuse across calls.
type Resolver struct {
	Fetch FetchFunc
}

func NewResolver() *Resolver {
	return &Resolver{Fetch: util.GetBytes}
}

// Resolve decodes the source into an in-memory image. Source-kind
// violations come back as *InvalidImageTypeError, non-200 fetches as
// *InvalidImageURLError; file and decode errors propagate as-is.
func (r *Resolver) Resolve(ctx context.Context, src Source) (image.Image, error) {
	switch src.kind {
	case kindBuffer:
		if src.buf == nil {
			return nil, &InvalidImageTypeError{Reason: "buffer source has no reader"}
		}
		rs, ok := src.buf.(io.ReadSeeker)
		if !ok {
			return nil, &InvalidImageTypeError{Reason: fmt.Sprintf("buffer %T must be a readable byte stream that supports seeking", src.buf)}
		}
		if _, err := rs.Seek(0, io.SeekStart); err != nil {
			return nil, &InvalidImageTypeError{Reason: "buffer is not seekable: " + err.Error()}
		}
		return imaging.Decode(rs)
	case kindURL:
		body, status, err := r.Fetch(ctx, src.url)
		if err != nil {
			return nil, fmt.Errorf("fetching %s: %w", src.url, err)
		}
		if status != http.StatusOK {
			return nil, &InvalidImageURLError{URL: src.url, Status: status}
		}
		return imaging.Decode(bytes.NewReader(body))
	case kindFile:
		fp, err := os.Open(src.path)
		if err != nil {
			return nil, err
		}
		defer fp.Close()
		return imaging.Decode(fp)
	default:
		return nil, &InvalidImageTypeError{Reason: "source must be a path, url or file buffer"}
	}
}
