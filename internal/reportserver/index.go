package reportserver

import "net/url"

func runHref(id string) string {
	return "/runs/" + url.PathEscape(id)
}
