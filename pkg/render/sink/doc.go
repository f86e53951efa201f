// Package sink renders a composed element list to concrete output
// formats: standalone SVG, a JSON scene document, and PNG (via SVG
// conversion with librsvg).
//
// Sinks never reposition elements. They draw the list in order, which is
// why the composer's label-follows-owner ordering matters.
package sink
