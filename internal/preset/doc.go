// Package preset loads pipeline definitions from YAML files.
//
// A preset names an ordered list of stages with per-stage parameters:
//
//	name: strip-background
//	stages:
//	  - type: recolor
//	    params:
//	      target: "#ffffff"
//	      replacement: "#00000000"
//	      tolerance: 0.1
//	  - type: blur
//	    params:
//	      sigma: 1.5
//
// Build turns the parsed preset into imaging.Stage values ready to run with
// (*imaging.Bitmap).Pipeline. Supported stage types are "recolor",
// "greyscale", "blur", and "resample".
package preset
