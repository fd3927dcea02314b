// Package stage provides concrete pipeline stages for the imaging package.
//
// Each stage implements imaging.Stage and mutates the bitmap it is handed.
// Stages are composed either directly ((*imaging.Bitmap).Pipeline) or from a
// YAML preset (internal/preset), which maps stage type names to these
// implementations.
package stage
