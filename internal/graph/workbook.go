package graph

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path"
	"strings"

	"github.com/einhellcentralasia/public-price-stock/internal/table"
)

// ErrWorkbookNotFound is returned when the workbook cannot be located on
// the drive by path or by search.
var ErrWorkbookNotFound = errors.New("workbook not found on drive")

// driveItem is the subset of a Graph driveItem we care about.
type driveItem struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	ParentReference struct {
		Path string `json:"path"`
	} `json:"parentReference"`
}

// rangeValues is the shape of headerRowRange / dataBodyRange responses.
type rangeValues struct {
	Values [][]any `json:"values"`
}

// ResolveSiteID resolves the SharePoint site id from hostname and site path.
func (c *Client) ResolveSiteID(ctx context.Context) (string, error) {
	var site struct {
		ID string `json:"id"`
	}
	url := fmt.Sprintf("%s/sites/%s:%s", c.baseURL, c.cfg.SiteHostname, escapePath(c.cfg.SitePath))
	if err := c.getJSON(ctx, url, &site); err != nil {
		return "", fmt.Errorf("failed to resolve site: %w", err)
	}
	if site.ID == "" {
		return "", fmt.Errorf("site response carried no id")
	}
	return site.ID, nil
}

// ResolveItemID locates the workbook drive item. The configured path is
// tried first along with its library-name alternates, because SharePoint
// exposes the same library as both "Shared Documents" and "Documents"
// depending on locale and API surface. When no path variant matches, the
// drive is searched by file name and candidates are matched on their parent
// folder path.
func (c *Client) ResolveItemID(ctx context.Context, siteID string) (string, error) {
	for _, p := range pathCandidates(c.cfg.WorkbookPath) {
		item, err := c.itemByPath(ctx, siteID, p)
		if err != nil {
			slog.Debug("workbook path candidate missed",
				slog.String("path", p),
				slog.String("error", err.Error()))
			continue
		}
		slog.Info("Resolved workbook by path", slog.String("path", p))
		return item.ID, nil
	}

	filename := path.Base(c.cfg.WorkbookPath)
	folders := pathCandidates(path.Dir(c.cfg.WorkbookPath))

	items, err := c.searchItems(ctx, siteID, filename)
	if err != nil {
		return "", fmt.Errorf("drive search for %q failed: %w", filename, err)
	}

	for _, it := range items {
		for _, folder := range folders {
			if strings.HasSuffix(it.ParentReference.Path, folder) ||
				strings.Contains(it.ParentReference.Path, "/drive/root:"+folder) {
				slog.Info("Resolved workbook by search",
					slog.String("name", it.Name),
					slog.String("parent", it.ParentReference.Path))
				return it.ID, nil
			}
		}
	}

	return "", ErrWorkbookNotFound
}

// ReadTable fetches the named workbook table: the header row range first,
// then the data body range, normalized to strings.
func (c *Client) ReadTable(ctx context.Context, siteID, itemID string) (*table.Table, error) {
	base := fmt.Sprintf("%s/sites/%s/drive/items/%s/workbook/tables/%s",
		c.baseURL, siteID, itemID, url.PathEscape(c.cfg.TableName))

	var header rangeValues
	if err := c.getJSON(ctx, base+"/headerRowRange", &header); err != nil {
		return nil, fmt.Errorf("failed to read header row of table %s: %w", c.cfg.TableName, err)
	}
	if len(header.Values) == 0 {
		return nil, fmt.Errorf("table %s has no header row", c.cfg.TableName)
	}

	headers := make([]string, len(header.Values[0]))
	for i, v := range header.Values[0] {
		headers[i] = cellString(v)
	}

	var body rangeValues
	if err := c.getJSON(ctx, base+"/dataBodyRange", &body); err != nil {
		return nil, fmt.Errorf("failed to read body of table %s: %w", c.cfg.TableName, err)
	}

	rows := make([][]string, 0, len(body.Values))
	for _, raw := range body.Values {
		row := make([]string, len(raw))
		for i, v := range raw {
			row[i] = cellString(v)
		}
		rows = append(rows, row)
	}

	t, err := table.New(headers, rows)
	if err != nil {
		return nil, fmt.Errorf("table %s is malformed: %w", c.cfg.TableName, err)
	}

	slog.Info("Fetched workbook table",
		slog.String("table", c.cfg.TableName),
		slog.Int("columns", len(t.Headers)),
		slog.Int("rows", t.RowCount()))

	return t, nil
}

// DownloadWorkbook fetches the raw .xlsx content for local parsing.
func (c *Client) DownloadWorkbook(ctx context.Context, siteID, itemID string) ([]byte, error) {
	url := fmt.Sprintf("%s/sites/%s/drive/items/%s/content", c.baseURL, siteID, itemID)

	resp, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, c.statusError(url, resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook content: %w", err)
	}

	slog.Info("Downloaded workbook", slog.Int("size_bytes", len(data)))
	return data, nil
}

// itemByPath addresses a drive item directly by path.
func (c *Client) itemByPath(ctx context.Context, siteID, itemPath string) (*driveItem, error) {
	if !strings.HasPrefix(itemPath, "/") {
		itemPath = "/" + itemPath
	}
	url := fmt.Sprintf("%s/sites/%s/drive/root:%s", c.baseURL, siteID, escapePath(itemPath))

	var item driveItem
	if err := c.getJSON(ctx, url, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// searchItems runs a drive search by file name.
func (c *Client) searchItems(ctx context.Context, siteID, query string) ([]driveItem, error) {
	var result struct {
		Value []driveItem `json:"value"`
	}
	searchURL := fmt.Sprintf("%s/sites/%s/drive/root/search(q='%s')", c.baseURL, siteID, url.PathEscape(query))
	if err := c.getJSON(ctx, searchURL, &result); err != nil {
		return nil, err
	}
	return result.Value, nil
}

// pathCandidates expands a drive path into the library-name variants under
// which SharePoint may expose the same file. Order matters: the configured
// path goes first, duplicates are dropped.
func pathCandidates(p string) []string {
	variants := []string{
		p,
		strings.Replace(p, "/Shared Documents", "/Documents", 1),
		strings.Replace(p, "/Documents", "/Shared Documents", 1),
	}
	if strings.HasPrefix(p, "/Shared Documents/") {
		variants = append(variants, strings.TrimPrefix(p, "/Shared Documents"))
	}
	if strings.HasPrefix(p, "/Documents/") {
		variants = append(variants, strings.TrimPrefix(p, "/Documents"))
	}

	seen := make(map[string]bool, len(variants))
	out := make([]string, 0, len(variants))
	for _, v := range variants {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
