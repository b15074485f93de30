// Package pipeline implements the README-to-HTML conversion pipeline.
//
// The stages run in this order:
//   - Markdown preprocessing (line normalization, sentinel stripping)
//   - README dialect conversion (blocks, inline spans, anchors)
//   - Snippet injection (@SOURCEFILE directives replaced by highlighted tables)
//   - Raw HTML scan of the final fragment
//
// The converter keeps no state between calls. Module lookup, file reading and
// source highlighting reach the pipeline through the ModuleResolver, LineReader
// and Highlighter interfaces so each document converts independently.
package pipeline
