// Package layout arranges a grid of views inside a viewport.
//
// # Overview
//
// A Layout is a list of rows, each row a list of view keys. Views in the same
// row sit side by side; rows stack vertically. Declared order is
// authoritative: it decides both placement and who receives leftover space.
//
// # Algorithm
//
// Compute runs four phases, once per frame or on any resize:
//
//   - A, intrinsic sizing: every view gets min(max-needed size, even share
//     of its row's width and of the viewport's height).
//   - B, leftover width: per row, views in declared order grow toward their
//     max-needed width until the row's spare width runs out.
//   - C, leftover height: rows in declared order grow by the largest height
//     gap among their views. Every view in the row grows by up to that
//     increment but the shared budget is charged once per row, so a row's
//     consumption is governed by its hungriest view.
//   - D, placement: views are placed left to right, rows top to bottom,
//     separated by Margin. A row advances the cursor by its tallest view.
//
// # Degenerate Viewports
//
// A viewport too small for the grid yields zero-sized rects rather than an
// error. Positions may fall outside the viewport; callers treat empty rects as
// "nothing to draw this frame".
//
// # Usage
//
//	res := layout.Do(&l, viewport, views)
//	for _, k := range res.Missing {
//	    // dangling key, prune it
//	}
package layout
