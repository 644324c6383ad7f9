// Package faa downloads the current CIFP cycle from the FAA digital products site.
package faa

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// CIFPFilename is the fixed-column data file inside the CIFP zip.
const CIFPFilename = "FAACIFP18"

// ErrNoCIFPLink means the download page had no link to a zip archive.
var ErrNoCIFPLink = errors.New("no CIFP zip link on download page")

// Client fetches CIFP releases.
type Client struct {
	pageURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client for the download page at pageURL.
func NewClient(pageURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		pageURL: pageURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// ResolveZipURL scrapes the download page for the current cycle's zip. The
// link inside the page's cfoutput block is preferred; otherwise the first
// .zip link on the page is used.
func (c *Client) ResolveZipURL(ctx context.Context) (string, error) {
	body, err := c.get(ctx, c.pageURL)
	if err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parse download page: %w", err)
	}

	href, ok := doc.Find("cfoutput a[href]").First().Attr("href")
	if !ok {
		doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
			h, _ := a.Attr("href")
			if strings.HasSuffix(strings.ToLower(h), ".zip") {
				href, ok = h, true
				return false
			}
			return true
		})
	}
	if !ok {
		return "", ErrNoCIFPLink
	}

	base, err := url.Parse(c.pageURL)
	if err != nil {
		return "", fmt.Errorf("parse page url: %w", err)
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", fmt.Errorf("parse zip link %q: %w", href, err)
	}
	return base.ResolveReference(ref).String(), nil
}

// Download fetches the current CIFP zip and returns the decompressed FAACIFP18.
func (c *Client) Download(ctx context.Context) ([]byte, error) {
	zipURL, err := c.ResolveZipURL(ctx)
	if err != nil {
		return nil, err
	}
	c.logger.Info("downloading cifp", "url", zipURL)

	archive, err := c.get(ctx, zipURL)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("cifp archive received", "bytes", len(archive))

	data, err := ExtractCIFP(archive)
	if err != nil {
		return nil, err
	}
	c.logger.Info("cifp extracted", "bytes", len(data))
	return data, nil
}

// ExtractCIFP returns the FAACIFP18 entry of a CIFP zip archive.
func ExtractCIFP(archive []byte) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("open cifp zip: %w", err)
	}
	for _, f := range zr.File {
		if path.Base(f.Name) != CIFPFilename {
			continue
		}
		r, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", f.Name, err)
		}
		defer r.Close()
		return io.ReadAll(r)
	}
	return nil, fmt.Errorf("%s not found in cifp zip", CIFPFilename)
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("get %s: status %d: %s", u, resp.StatusCode, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", u, err)
	}
	return body, nil
}
