// Package imaging implements the pixel recolor engine and its supporting
// image operations.
//
// The central type is Bitmap, a raw 8-bit RGBA pixel buffer with an explicit
// stride, and the central operation is Recolor, which replaces every pixel
// within a per-channel tolerance of a target color. Around the engine the
// package provides loading and caching (BitmapCache), color sampling and
// analysis, cropping, bitmap comparison, a composable stage pipeline, and
// tolerance sweep animation.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - Coordinates are inclusive for single points
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// # Pixel Layout
//
// Bitmaps store non-premultiplied RGBA bytes in row-major order. A row
// occupies Stride bytes, which may exceed Width*4 when rows are padded; the
// byte offset of pixel (x, y) is y*Stride + x*4. Operations never read or
// write padding bytes, and outputs preserve the input's stride.
//
// # Color Representation
//
// The engine works in normalized channels (Color, all components in [0,1]).
// Sampling results additionally carry hex ("#rrggbb"), 8-bit RGBA, and HSL
// (hue 0-360, saturation and lightness 0-100) forms.
//
// # Thread Safety
//
// The BitmapCache type is safe for concurrent use. Recolor parallelizes
// internally and does not mutate its input; other operations are stateless.
// Callers that mutate a shared Bitmap, for example through pipeline stages,
// must synchronize access themselves.
//
// # Error Handling
//
// Every operation validates its bitmap before touching pixel data and
// returns an error wrapping ErrInvalidBuffer or ErrUnsupportedLayout for
// malformed inputs. Coordinate and region arguments outside the image bounds
// are rejected with descriptive errors. A failed operation performs no
// partial work.
package imaging
