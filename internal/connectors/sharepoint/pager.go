package sharepoint

import (
	"context"

	"github.com/custodia-labs/spfetch/internal/core/domain"
)

// FetchAll fetches every page of a collection resource, following the
// envelope's __next continuation pointer until the server omits it, and
// returns the records concatenated in page order.
//
// Pagination is inherently sequential: page N+1's URL is only known once
// page N has been parsed. Items are never reordered, dropped, or
// deduplicated; if the server returns overlapping pages, duplicates
// propagate. Any fetch failure aborts the whole operation.
func (c *Client) FetchAll(ctx context.Context, resourceURL string) ([]domain.ListItem, error) {
	var items []domain.ListItem

	for next := resourceURL; next != ""; {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, err := c.fetchPage(ctx, next)
		if err != nil {
			return nil, err
		}

		items = append(items, page.Results...)
		next = page.NextURL
	}

	return items, nil
}

// FetchLists fetches the site's lists.
func (c *Client) FetchLists(ctx context.Context) ([]domain.ListItem, error) {
	return c.FetchAll(ctx, c.urls.Lists())
}

// FetchListItems fetches all items of a list by GUID.
func (c *Client) FetchListItems(ctx context.Context, listGUID string) ([]domain.ListItem, error) {
	return c.FetchAll(ctx, c.urls.ListItems(listGUID, c.config.MaxResults))
}

// FetchFolderFiles fetches the files in a server-relative folder.
func (c *Client) FetchFolderFiles(ctx context.Context, folderPath string) ([]domain.ListItem, error) {
	return c.FetchAll(ctx, c.urls.FolderFiles(folderPath))
}

// FetchSubfolders fetches the subfolders of a server-relative folder.
func (c *Client) FetchSubfolders(ctx context.Context, folderPath string) ([]domain.ListItem, error) {
	return c.FetchAll(ctx, c.urls.FolderSubfolders(folderPath))
}
