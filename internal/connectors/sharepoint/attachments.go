package sharepoint

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/spfetch/internal/core/domain"
)

// AttachAll fetches the attachment collection of every item concurrently
// and stores each result on its item in place. Parent order is untouched
// regardless of completion order, because results are assigned by index
// rather than collected.
//
// The join is all-or-nothing: AttachAll waits for every fetch to settle
// and fails if any one fetch failed, returning the first error in item
// order. On error the caller must discard the slice, as some items may
// already carry attachments.
func (c *Client) AttachAll(ctx context.Context, listGUID string, items []domain.ListItem) error {
	var wg sync.WaitGroup
	errs := make([]error, len(items))

	for i := range items {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = c.attachOne(ctx, listGUID, items[i])
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return fmt.Errorf("attach item %d: %w", i, err)
		}
	}
	return nil
}

// attachOne fetches one item's fully-paginated attachment collection and
// assigns it onto the item.
func (c *Client) attachOne(ctx context.Context, listGUID string, item domain.ListItem) error {
	id, err := item.ID()
	if err != nil {
		return err
	}

	files, err := c.FetchAll(ctx, c.urls.ItemAttachments(listGUID, id))
	if err != nil {
		return err
	}

	item.SetAttachments(files)
	return nil
}

// FetchListItemsWithAttachments fetches all items of a list and populates
// each item's attachment collection.
func (c *Client) FetchListItemsWithAttachments(ctx context.Context, listGUID string) ([]domain.ListItem, error) {
	items, err := c.FetchListItems(ctx, listGUID)
	if err != nil {
		return nil, err
	}

	if err := c.AttachAll(ctx, listGUID, items); err != nil {
		return nil, err
	}
	return items, nil
}
