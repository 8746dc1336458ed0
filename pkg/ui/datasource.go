// Package ui provides page objects for the Leggera web application: login, menu, header,
// snackbar, mainform listings and the page wizard.
package ui

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/playwright-community/playwright-go"

	"github.com/leggera/lg2e2e/pkg/listing"
)

// listingResponse is the envelope of the lg2api listing endpoints.
type listingResponse struct {
	DataSource []map[string]any `json:"dataSource"`
}

// DecodeDataSource extracts the dataSource records of a listing API response.
// String values are kept as is, numbers and booleans are formatted, nulls are dropped.
func DecodeDataSource(body []byte) ([]listing.Record, error) {
	var resp listingResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode listing response: %w", err)
	}

	res := make([]listing.Record, 0, len(resp.DataSource))
	for _, raw := range resp.DataSource {
		rec := make(listing.Record, len(raw))
		for k, v := range raw {
			switch val := v.(type) {
			case string:
				rec[k] = val
			case float64:
				rec[k] = strconv.FormatFloat(val, 'f', -1, 64)
			case bool:
				rec[k] = strconv.FormatBool(val)
			case nil:
			default:
				rec[k] = fmt.Sprint(val)
			}
		}
		res = append(res, rec)
	}
	return res, nil
}

// SpyDataSource runs action and returns the records of the first response matching urlGlob.
func SpyDataSource(page playwright.Page, urlGlob string, action func() error) ([]listing.Record, error) {
	resp, err := page.ExpectResponse(urlGlob, action)
	if err != nil {
		return nil, fmt.Errorf("wait for %s: %w", urlGlob, err)
	}
	body, err := resp.Body()
	if err != nil {
		return nil, fmt.Errorf("read %s body: %w", resp.URL(), err)
	}
	return DecodeDataSource(body)
}

// ListingEndpoint is the glob of the lg2api endpoint serving a listing context, e.g. "elements".
func ListingEndpoint(context string) string {
	return fmt.Sprintf("**/lg2api/%s.php**", context)
}
