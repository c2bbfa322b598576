package chefapi

import "net/http"

// apiHeaders builds the canned header set the structured endpoints expect,
// mirroring what the site's own frontend sends. The rotating client identity
// is layered on top by the fetcher
func (c *Client) apiHeaders(path string) http.Header {
	h := http.Header{}
	h.Set("Accept", "application/json, text/plain, */*")
	h.Set("Accept-Language", "en-GB,en;q=0.5")
	h.Set("Sec-Fetch-Dest", "empty")
	h.Set("Sec-Fetch-Mode", "cors")
	h.Set("Sec-Fetch-Site", "same-origin")
	h.Set("X-Requested-With", "XMLHttpRequest")
	h.Set("Referer", c.baseURL+path)

	// Static long-lived credentials; refreshing them is out of scope
	if c.sessionCookie != "" {
		h.Set("Cookie", c.sessionCookie)
	}
	if c.csrfToken != "" {
		h.Set("X-Csrf-Token", c.csrfToken)
	}
	return h
}
