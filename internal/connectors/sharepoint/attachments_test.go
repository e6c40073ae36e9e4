package sharepoint

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/spfetch/internal/core/domain"
)

// attachmentBody renders an attachment collection envelope with the
// given file names.
func attachmentBody(names ...string) string {
	if len(names) == 0 {
		return `{"d": {"results": []}}`
	}
	body := `{"d": {"results": [`
	for i, name := range names {
		if i > 0 {
			body += ","
		}
		body += fmt.Sprintf(`{"FileName": %q}`, name)
	}
	return body + "]}}"
}

func TestAttachAll_PopulatesEveryItemInOrder(t *testing.T) {
	// Item N gets N-1 attachments.
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "items(1)"):
			fmt.Fprint(w, attachmentBody())
		case strings.Contains(r.URL.Path, "items(2)"):
			fmt.Fprint(w, attachmentBody("a.txt"))
		case strings.Contains(r.URL.Path, "items(3)"):
			fmt.Fprint(w, attachmentBody("b.txt", "c.txt"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	client, _ := newTestClient(t, mux)

	items := []domain.ListItem{
		{"Id": float64(1), "Title": "first"},
		{"Id": float64(2), "Title": "second"},
		{"Id": float64(3), "Title": "third"},
	}

	err := client.AttachAll(context.Background(), "list-guid", items)
	require.NoError(t, err)

	// Parent order unchanged, each item holding exactly its own files.
	assert.Equal(t, "first", items[0].StringField("Title"))
	assert.Equal(t, "second", items[1].StringField("Title"))
	assert.Equal(t, "third", items[2].StringField("Title"))
	assert.Len(t, items[0].Attachments(), 0)
	assert.Len(t, items[1].Attachments(), 1)
	assert.Len(t, items[2].Attachments(), 2)
	assert.Equal(t, "a.txt", items[1].Attachments()[0].StringField("FileName"))
}

func TestAttachAll_PaginatedSubCollection(t *testing.T) {
	var server string
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/more" {
			fmt.Fprint(w, attachmentBody("second-page.txt"))
			return
		}
		fmt.Fprintf(w, `{"d": {"results": [{"FileName": "first-page.txt"}], "__next": %q}}`, server+"/more")
	})

	client, srv := newTestClient(t, mux)
	server = srv.URL

	items := []domain.ListItem{{"Id": float64(1)}}
	err := client.AttachAll(context.Background(), "list-guid", items)
	require.NoError(t, err)

	files := items[0].Attachments()
	require.Len(t, files, 2)
	assert.Equal(t, "first-page.txt", files[0].StringField("FileName"))
	assert.Equal(t, "second-page.txt", files[1].StringField("FileName"))
}

func TestAttachAll_SingleFailureFailsAll(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "items(2)") {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		fmt.Fprint(w, attachmentBody("ok.txt"))
	})

	client, _ := newTestClient(t, mux)

	items := []domain.ListItem{
		{"Id": float64(1)},
		{"Id": float64(2)},
		{"Id": float64(3)},
	}

	err := client.AttachAll(context.Background(), "list-guid", items)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAttachAll_ItemWithoutID(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, attachmentBody())
	}))

	items := []domain.ListItem{{"Title": "no id"}}
	err := client.AttachAll(context.Background(), "list-guid", items)
	assert.Error(t, err)
}

func TestAttachAll_EmptyParentList(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("no requests expected for an empty parent list")
	}))

	err := client.AttachAll(context.Background(), "list-guid", nil)
	assert.NoError(t, err)
}

// TestFetchListItemsWithAttachments_EndToEnd exercises the full flow:
// two item pages stitched together, then a per-item attachment fan-out
// yielding 2, 0, and 1 files respectively.
func TestFetchListItemsWithAttachments_EndToEnd(t *testing.T) {
	var server string
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		switch {
		case path == "/page2":
			fmt.Fprint(w, `{"d": {"results": [{"Id": 3, "Title": "item3"}]}}`)
		case strings.Contains(path, "AttachmentFiles"):
			switch {
			case strings.Contains(path, "items(1)"):
				fmt.Fprint(w, attachmentBody("a.pdf", "b.pdf"))
			case strings.Contains(path, "items(2)"):
				fmt.Fprint(w, attachmentBody())
			case strings.Contains(path, "items(3)"):
				fmt.Fprint(w, attachmentBody("c.pdf"))
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		case strings.Contains(path, "/items"):
			fmt.Fprintf(w, `{"d": {"results": [{"Id": 1, "Title": "item1"}, {"Id": 2, "Title": "item2"}], "__next": %q}}`, server+"/page2")
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	client, srv := newTestClient(t, mux)
	server = srv.URL

	items, err := client.FetchListItemsWithAttachments(context.Background(), "list-guid")
	require.NoError(t, err)

	require.Len(t, items, 3)
	assert.Equal(t, []string{"item1", "item2", "item3"}, titles(items))
	assert.Len(t, items[0].Attachments(), 2)
	assert.Len(t, items[1].Attachments(), 0)
	assert.Len(t, items[2].Attachments(), 1)
}
