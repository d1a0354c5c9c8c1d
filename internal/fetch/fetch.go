package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout bounds a single transfer when the caller does not override it.
const DefaultTimeout = 30 * time.Second

// Fetcher performs single HTTP GET transfers to local files.
// It never retries — retry policy belongs to the caller.
type Fetcher struct {
	http *http.Client
}

// New creates a Fetcher with the given transfer timeout.
// A non-positive timeout falls back to DefaultTimeout.
func New(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		http: &http.Client{Timeout: timeout},
	}
}

// Fetch issues one GET for rawURL and writes the full body to dest,
// returning dest on success. Outcomes map to a small taxonomy:
// 404 → ErrNotFound, transport failures and timeouts → ErrUnreachable,
// other non-2xx → *StatusError, local filesystem failures → *WriteError.
//
// The body is written to a uniquely named temp file and renamed onto dest
// only after the whole body has been copied, so a cancelled or failed
// transfer never leaves a partial file that looks cached.
func (f *Fetcher) Fetch(ctx context.Context, rawURL, dest string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("building request for %s: %w", rawURL, err)
	}

	resp, err := f.http.Do(req)
	if err != nil {
		return "", classifyTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return "", &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	if err := writeAtomic(dest, resp.Body); err != nil {
		return "", err
	}
	return dest, nil
}

// writeAtomic copies r to a temp file next to dest and renames it into
// place. The uuid suffix keeps concurrent fetches of the same destination
// from clobbering each other's temp files.
func writeAtomic(dest string, r io.Reader) error {
	tmp := dest + ".tmp-" + uuid.NewString()

	out, err := os.Create(tmp)
	if err != nil {
		return &WriteError{Path: dest, Err: err}
	}
	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		_ = os.Remove(tmp)
		// A broken transfer mid-body is a network failure, not a disk one.
		if cerr := classifyTransportError(err); errors.Is(cerr, ErrUnreachable) {
			return cerr
		}
		return &WriteError{Path: dest, Err: err}
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(tmp)
		return &WriteError{Path: dest, Err: err}
	}
	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return &WriteError{Path: dest, Err: err}
	}
	return nil
}

// classifyTransportError folds the many shapes of unreachable-host failures
// into ErrUnreachable while keeping the cause in the chain.
func classifyTransportError(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		err = uerr.Err
	}

	var nerr net.Error
	switch {
	case errors.As(err, &nerr) && nerr.Timeout(),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled),
		isConnectError(err):
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	return fmt.Errorf("download failed: %w", err)
}

func isConnectError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}

// EnsureDir creates dir and any parents; creating an existing directory is
// not an error.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &WriteError{Path: dir, Err: err}
	}
	return nil
}
