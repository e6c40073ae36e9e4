package sharepoint

import (
	"fmt"
	"strings"
)

// URLBuilder assembles absolute REST resource URLs following SharePoint
// 2013 path conventions. The client consumes only the resulting strings;
// nothing here performs I/O.
type URLBuilder struct {
	baseURL  string
	siteName string
}

// NewURLBuilder creates a builder for the given web application and site.
func NewURLBuilder(baseURL, siteName string) *URLBuilder {
	return &URLBuilder{
		baseURL:  strings.TrimRight(baseURL, "/"),
		siteName: siteName,
	}
}

// apiRoot returns the _api endpoint root for the configured site.
func (b *URLBuilder) apiRoot() string {
	if b.siteName == "" {
		return b.baseURL + "/_api"
	}
	return b.baseURL + "/sites/" + b.siteName + "/_api"
}

// Lists returns the URL of the site's list collection.
func (b *URLBuilder) Lists() string {
	return b.apiRoot() + "/web/lists"
}

// List returns the URL of a single list by GUID.
func (b *URLBuilder) List(listGUID string) string {
	return fmt.Sprintf("%s/web/lists(guid'%s')", b.apiRoot(), escapeQuotes(listGUID))
}

// ListItems returns the URL of a list's item collection. A positive
// pageSize is applied as an OData $top query option.
func (b *URLBuilder) ListItems(listGUID string, pageSize int) string {
	url := b.List(listGUID) + "/items"
	if pageSize > 0 {
		url += fmt.Sprintf("?$top=%d", pageSize)
	}
	return url
}

// ItemAttachments returns the URL of an item's attachment collection.
func (b *URLBuilder) ItemAttachments(listGUID string, itemID int) string {
	return fmt.Sprintf("%s/items(%d)/AttachmentFiles", b.List(listGUID), itemID)
}

// AttachmentContent returns the URL of a single attachment's raw content.
func (b *URLBuilder) AttachmentContent(listGUID string, itemID int, fileName string) string {
	return fmt.Sprintf("%s('%s')/$value", b.ItemAttachments(listGUID, itemID), escapeQuotes(fileName))
}

// FolderFiles returns the URL of the file collection in a server-relative folder.
func (b *URLBuilder) FolderFiles(folderPath string) string {
	return b.folder(folderPath) + "/Files"
}

// FolderSubfolders returns the URL of the subfolder collection in a
// server-relative folder.
func (b *URLBuilder) FolderSubfolders(folderPath string) string {
	return b.folder(folderPath) + "/Folders"
}

// folder returns the URL addressing a folder by server-relative path.
func (b *URLBuilder) folder(folderPath string) string {
	return fmt.Sprintf("%s/web/GetFolderByServerRelativeUrl('%s')",
		b.apiRoot(), escapeQuotes(folderPath))
}

// escapeQuotes doubles single quotes, the OData escape for quoted
// string literals in resource paths.
func escapeQuotes(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
