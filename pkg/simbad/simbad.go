// Package simbad fetches high-proper-motion star candidates from the
// SIMBAD TAP service.
package simbad

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"

	"github.com/pierregab/HPMS/pkg/catalog"
	"github.com/pierregab/HPMS/pkg/units"
)

const (
	// DefaultBaseURL is the SIMBAD TAP endpoint at CDS Strasbourg.
	DefaultBaseURL = "https://simbad.cds.unistra.fr/simbad/sim-tap"

	userAgent = "hpms (star visibility CLI; +https://github.com/pierregab/HPMS)"
)

// QueryOptions selects which stars the ADQL query returns.
type QueryOptions struct {
	// MinTotalPM keeps only stars with sqrt(pmra²+pmdec²) above this
	// threshold, mas/yr.
	MinTotalPM float64

	// FluxFilter is the photometric band of the magnitude column.
	FluxFilter string

	// Magnitude range in the selected band, inclusive.
	MinMagnitude float64
	MaxMagnitude float64
}

// DefaultQueryOptions matches the catalog cut this tool was built around:
// very fast stars bright enough for small instruments.
func DefaultQueryOptions() QueryOptions {
	return QueryOptions{
		MinTotalPM:   1000,
		FluxFilter:   "V",
		MinMagnitude: 6,
		MaxMagnitude: 15,
	}
}

// Client speaks the TAP synchronous query protocol.
type Client struct {
	baseURL string
	http    *retryablehttp.Client
}

// NewClient builds a Client for the given TAP base URL ("" selects the
// default SIMBAD endpoint).
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.HTTPClient.Timeout = 60 * time.Second
	rc.Logger = nil

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    rc,
	}
}

func buildADQL(opts QueryOptions) string {
	return fmt.Sprintf(`SELECT basic.main_id AS main_id,
       basic.ra, basic.dec,
       basic.pmra, basic.pmdec,
       flux.flux AS magnitude
FROM basic
JOIN flux ON basic.oid = flux.oidref
WHERE SQRT(basic.pmra*basic.pmra + basic.pmdec*basic.pmdec) > %g
  AND flux.filter = '%s'
  AND flux.flux >= %g
  AND flux.flux <= %g`,
		opts.MinTotalPM, opts.FluxFilter, opts.MinMagnitude, opts.MaxMagnitude)
}

// FetchHighProperMotion runs the ADQL query against the TAP sync endpoint
// and returns normalized star records. Retrieval failures and malformed
// rows are terminal errors; the caller reports them and does not retry
// beyond the transport-level retries already built into the client.
func (c *Client) FetchHighProperMotion(ctx context.Context, opts QueryOptions) ([]catalog.StarRecord, error) {
	form := url.Values{
		"request": {"doQuery"},
		"lang":    {"ADQL"},
		"format":  {"json"},
		"query":   {buildADQL(opts)},
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/sync", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating TAP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying TAP service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d from %s", resp.StatusCode, c.baseURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading TAP response: %w", err)
	}

	return ParseResponse(string(body))
}

// tapColumn is one column of the TAP JSON result, located by name.
type tapColumn struct {
	index int
	unit  units.Unit
}

// ParseResponse decodes a TAP JSON document ({"metadata": [...], "data":
// [[...], ...]}) into star records. Column units come from the metadata
// block and are normalized through pkg/units: positions to degrees, proper
// motions to mas/yr. A column in an incompatible unit aborts the whole
// decode; a dimensionless column is assumed to already be in the target
// unit.
func ParseResponse(body string) ([]catalog.StarRecord, error) {
	meta := gjson.Get(body, "metadata")
	if !meta.Exists() {
		return nil, fmt.Errorf("TAP response has no metadata block")
	}

	cols := make(map[string]tapColumn)
	for i, m := range meta.Array() {
		name := strings.ToLower(gjson.Get(m.Raw, "name").Str)
		cols[name] = tapColumn{
			index: i,
			unit:  units.Parse(gjson.Get(m.Raw, "unit").Str),
		}
	}

	for _, required := range []string{"main_id", "ra", "dec", "pmra", "pmdec", "magnitude"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("TAP response is missing column %q", required)
		}
	}

	rows := gjson.Get(body, "data").Array()

	identifiers := make([]string, 0, len(rows))
	numeric := map[string][]float64{
		"ra": {}, "dec": {}, "pmra": {}, "pmdec": {}, "magnitude": {},
	}

	for rowIdx, row := range rows {
		fields := row.Array()
		if len(fields) != len(cols) {
			return nil, fmt.Errorf("TAP row %d has %d fields, want %d", rowIdx, len(fields), len(cols))
		}

		id := fields[cols["main_id"].index]
		if id.Type != gjson.String || id.Str == "" {
			return nil, fmt.Errorf("TAP row %d has no identifier", rowIdx)
		}
		identifiers = append(identifiers, id.Str)

		for name := range numeric {
			f := fields[cols[name].index]
			if f.Type != gjson.Number {
				return nil, fmt.Errorf("TAP row %d (%s): column %s is not numeric", rowIdx, id.Str, name)
			}
			numeric[name] = append(numeric[name], f.Num)
		}
	}

	// Normalize whole columns at once; the unit applies to the series.
	targets := map[string]units.Unit{
		"ra": units.Deg, "dec": units.Deg,
		"pmra": units.MasPerYear, "pmdec": units.MasPerYear,
	}
	for name, target := range targets {
		converted, err := units.Convert(numeric[name], cols[name].unit, target)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", name, err)
		}
		numeric[name] = converted
	}

	records := make([]catalog.StarRecord, len(identifiers))
	for i := range identifiers {
		records[i] = catalog.StarRecord{
			Identifier: identifiers[i],
			RARefDeg:   numeric["ra"][i],
			DecRefDeg:  numeric["dec"][i],
			PMRARaw:    numeric["pmra"][i],
			PMDecRaw:   numeric["pmdec"][i],
			Magnitude:  numeric["magnitude"][i],
		}
		if err := records[i].Validate(); err != nil {
			return nil, fmt.Errorf("TAP row %d: %w", i, err)
		}
	}

	return records, nil
}
