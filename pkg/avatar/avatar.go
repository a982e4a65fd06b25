// Package avatar builds deterministic avatar image URLs. The image itself is
// rendered by the external DiceBear service; only the URL is ever stored.
package avatar

import (
	"fmt"
	"net/url"
)

const baseURL = "https://api.dicebear.com/7.x/avataaars/svg"

// URLFor returns the avatar URL for a seed string. The same seed always
// yields the same image.
func URLFor(seed string) string {
	return fmt.Sprintf("%s?seed=%s", baseURL, url.QueryEscape(seed))
}
