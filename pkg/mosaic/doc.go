// Package mosaic arranges items of arbitrary aspect ratio into rows that
// span a fixed container width exactly, in the style of a justified photo
// gallery.
//
// # Passes
//
// [Layout] runs three pure passes, each of which is exported so callers can
// inspect intermediate state:
//
//  1. [Measure] caps every item at MaxItemSize on its larger side, keeping
//     the aspect ratio. Items already within the limit keep their natural
//     size.
//  2. [Flow] packs the measured sizes left to right. The first item of a row
//     fixes the row height; later items are rescaled to that height with
//     [FitToRow]. A row closes as soon as its width exceeds the container,
//     so the overflowing item stays in the row it overflowed.
//  3. [Justify] restacks the rows from the top and makes each row span the
//     container width. An equal share delta of the overflow (or underflow)
//     is subtracted from (or added to) every item's width and height and
//     from the row height.
//
// # Clamping
//
// With very narrow containers the equal-delta step can drive a width or the
// row height to zero or below. [ClampProportional], the default, detects
// that case and scales the row uniformly to the container width instead.
// [ClampNone] keeps the raw delta result.
//
// # Input Rules
//
// Natural sizes must be finite and positive; anything else fails the whole
// call with an INVALID_SIZE error. A container width of zero or less, or an
// empty item list, yields an empty [Result] with Height 0.
package mosaic
