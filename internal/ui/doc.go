// Package ui implements both interactive front ends using bubbletea's Elm
// architecture.
//
// One [Model] drives two modes:
//   - [AdminMode] : back-office console with status polling, refresh,
//     cover editing (single and bulk), and pack deletion
//   - [CatalogMode] : customer-facing catalog with search, load-more
//     pagination, clipboard copy, and WhatsApp deep links
//
// The Model implements the standard Init/Update/View pattern. Network
// work runs in commands; status observations flow through a channel from
// [tasks.StatusPoller], consumed via waitForStatus the same way progress
// updates are in long-running task engines. Destructive actions pass
// through a blocking confirmation view before any request is issued.
package ui
