// Package csvsource loads the CSV snapshot exports the stores are built
// from. Sources are either files under a local directory or resources under
// an http(s) base URL, which mirrors the same-origin static assets the
// dashboard fetches.
package csvsource

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/config"
	pkgerrors "github.com/Leo-Marbehan/arrivage-data-visualization/pkg/errors"
)

// Record is one CSV row keyed by column header.
type Record map[string]string

// Loader fetches and parses a named CSV resource.
type Loader interface {
	Load(ctx context.Context, name string) ([]Record, error)
}

type client struct {
	base string
	http *http.Client
}

// New builds a Loader for the configured base location.
func New(cfg config.DataConfig) Loader {
	return &client{
		base: cfg.BaseLocation,
		http: &http.Client{Timeout: cfg.FetchTimeout},
	}
}

func (c *client) Load(ctx context.Context, name string) ([]Record, error) {
	reader, err := c.open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	records, err := Parse(reader)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("parsing csv %q", name))
	}
	return records, nil
}

func (c *client) open(ctx context.Context, name string) (io.ReadCloser, error) {
	if strings.HasPrefix(c.base, "http://") || strings.HasPrefix(c.base, "https://") {
		target := strings.TrimSuffix(c.base, "/") + "/" + url.PathEscape(name)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "building csv request")
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("fetching csv %q", name))
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("fetching csv %q: status %d", name, resp.StatusCode))
		}
		return resp.Body, nil
	}

	file, err := os.Open(filepath.Join(c.base, name))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("opening csv %q", name))
	}
	return file, nil
}

// Parse reads header-driven CSV content. The first row names the columns;
// short rows are padded with empty cells and long rows keep only the headed
// cells, so malformed rows reach the extractors instead of failing the
// whole file. Blank lines are skipped by the reader.
func Parse(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}

		record := make(Record, len(header))
		for i, column := range header {
			if i < len(row) {
				record[column] = row[i]
			} else {
				record[column] = ""
			}
		}
		records = append(records, record)
	}
	return records, nil
}
