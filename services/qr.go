package services

import (
	"fmt"
	"net/url"
	"strings"
)

// CustomerMenuURL is the link encoded in a table's QR code. Without a table
// it points at the shop's takeaway menu.
func CustomerMenuURL(origin, shopID, tableID string) (string, error) {
	if shopID == "" {
		return "", fmt.Errorf("shop id is required")
	}
	base, err := url.Parse(strings.TrimRight(origin, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return "", fmt.Errorf("invalid public origin %q", origin)
	}
	base.Path += "/menu"
	q := url.Values{}
	q.Set("shopId", shopID)
	if tableID != "" {
		q.Set("tableId", tableID)
	}
	base.RawQuery = q.Encode()
	return base.String(), nil
}
