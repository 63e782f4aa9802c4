// Package directory holds the fetch-list-detail view model shared by every
// directory tab.
//
// A Screen is mounted once, issues exactly one fetch per mount and then lets the
// user move between the list and the detail of one selected record. Selection is
// an index into the fetched items, so a detail view can only ever show a record
// from the most recent fetch.
package directory
