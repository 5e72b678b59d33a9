// Package graph is a minimal Microsoft Graph client for the one job this
// repository has: locating the price/stock workbook on SharePoint and
// reading its published table. Authentication uses the app-only
// client-credentials flow; all requests share a rate limiter because the
// workbook endpoints throttle hard.
package graph
