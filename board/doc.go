// Package board derives renderable layout plans from transit data snapshots.
//
// This is the decision core of the information board. It owns four pieces of
// logic:
//
//   - Countdown classification: minutes until an HH:MM departure with the
//     03:00 day-rollover rule, mapped to an urgency tier (color + phrase).
//   - Train-type coloring: an ordered keyword table, first substring match
//     wins.
//   - Ticker composition: the rotating status line rebuilt from each data
//     refresh in a fixed priority order.
//   - Frame composition: up to two departure rows in one of two layouts
//     toggled on a timer, the scrolling ticker, and the blinking clock,
//     emitted as an ordered operation list (Plan) for a renderer.
//
// Everything here is deterministic in its inputs: the wall-clock time is an
// argument, never read internally, so the whole package is testable with a
// simulated clock. Pixel output is out of scope; see the display package.
package board
