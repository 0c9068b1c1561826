// Package apiclient talks to the remote contacts API over HTTP.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"contactsui/errs"
)

var ErrUnreachable = errs.Errorf(errs.EUNAVAILABLE, "contacts api is unreachable")

type Options struct {
	// Host is prefixed to every endpoint, e.g. "https://contacts.example.com".
	Host string

	// HTTPClient defaults to a client without timeout.
	HTTPClient *http.Client
}

// Client issues one request per Call. It never retries and keeps no state
// between calls.
type Client struct {
	host string
	http *http.Client
}

func NewClient(opts Options) (*Client, error) {
	host := strings.TrimRight(strings.TrimSpace(opts.Host), "/")
	if host == "" {
		return nil, errors.New("apiclient: host is required")
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}

	return &Client{host: host, http: hc}, nil
}

// File is a multipart payload. Passing one as the body of Call sends it as
// multipart/form-data instead of JSON.
type File struct {
	Field     string
	Filename  string
	MediaType string
	Content   io.Reader
}

// StatusError is returned for any response outside the 2xx range.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("apiclient: %s %s: HTTP error! status: %d", e.Method, e.URL, e.StatusCode)
}

// Unwrap classifies the status for callers that switch on errs codes.
func (e *StatusError) Unwrap() error {
	return errs.Errorf(statusCode(e.StatusCode), "contacts api responded with status %d", e.StatusCode)
}

func statusCode(status int) string {
	switch {
	case status == http.StatusNotFound:
		return errs.ENOTFOUND
	case status == http.StatusConflict:
		return errs.ECONFLICT
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return errs.EUNAUTHORIZED
	case status == http.StatusNotImplemented:
		return errs.ENOTIMPLEMENTED
	case status >= 400 && status < 500:
		return errs.EINVALID
	case status == http.StatusBadGateway, status == http.StatusServiceUnavailable, status == http.StatusGatewayTimeout:
		return errs.EUNAVAILABLE
	}
	return errs.EINTERNAL
}

// Call sends method to the host-relative endpoint and decodes a JSON response
// into out. body may be nil, a *File, or any value encodable as JSON. out may
// be nil when the response is not needed.
func (c *Client) Call(ctx context.Context, endpoint, method string, body, out any) error {
	url := c.host + endpoint

	payload, contentType, err := encodeBody(body)
	if err != nil {
		return fmt.Errorf("apiclient: %s %s: %w", method, url, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		return fmt.Errorf("apiclient: %s %s: %w", method, url, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("apiclient: %s %s: %w: %w", method, url, ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Method: method, URL: url, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("apiclient: %s %s: read response: %w", method, url, err)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("apiclient: %s %s: decode response: %w", method, url, err)
	}
	return nil
}

func encodeBody(body any) (io.Reader, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case *File:
		return encodeMultipart(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, "", fmt.Errorf("encode json body: %w", err)
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func encodeMultipart(f *File) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(f.Field), quoteEscaper.Replace(f.Filename)))
	if f.MediaType != "" {
		h.Set("Content-Type", f.MediaType)
	}

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("create multipart part: %w", err)
	}
	if f.Content != nil {
		if _, err := io.Copy(part, f.Content); err != nil {
			return nil, "", fmt.Errorf("copy multipart content: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}
