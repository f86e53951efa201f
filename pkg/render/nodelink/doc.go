// Package nodelink renders diagram graphs as classic node-link drawings
// via Graphviz DOT. It bypasses the layered layout engine entirely,
// which makes it useful for quick structural previews and for debugging
// graphs before composing a full scene.
package nodelink
