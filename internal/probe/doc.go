// Package probe implements the tool-presence and version-discovery engine:
// probe declarations, the layered discovery strategies (PATH execution,
// registry lookup, filesystem search, file-metadata read, dual-mode and
// feature-state queries), output normalization and pattern extraction, and
// the result store consumed by the report renderer.
package probe
