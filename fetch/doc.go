// Package fetch gathers the upstream data behind the display documents.
//
// Three sources feed the board:
//
//   - Searcher scrapes transit route searches for the next departure toward
//     each destination group, plus the first and last train of the day.
//   - OperationSource reads the area disruption page and classifies affected
//     lines into suspensions, delays, and other trouble.
//   - WeatherSource reads the JMA forecast feed with an in-memory TTL cache
//     backed by the persisted weather document.
//
// Daemon ties them together: it polls the departure document and re-runs
// the search when the data is missing, stale, or about to expire because
// the earliest departure is imminent. All documents are written atomically
// through feed.WriteJSON, so the display engine never observes a partial
// file.
package fetch
