package api

import (
	"fmt"
	"net/http"

	"boscoin.io/rankchoice/lib/network/api/resource"
	"boscoin.io/rankchoice/lib/storage"
)

// newResourceList builds the page with next/prev links continuing from
// `cursor`. The cursor record itself is included again by the next page.
func newResourceList(r *http.Request, rs []resource.Resource, options storage.ListOptions, cursor string) *resource.ResourceList {
	link := func(reverse bool) string {
		if cursor == "" {
			return ""
		}
		o := storage.NewDefaultListOptions(reverse, []byte(cursor), options.Limit())
		return fmt.Sprintf("%s?%s", r.URL.Path, o.Encode())
	}

	return resource.NewResourceList(
		rs,
		r.URL.String(),
		link(options.Reverse()),
		link(!options.Reverse()),
	)
}
