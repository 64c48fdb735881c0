// Package buffer provides the FIFO sample store used by streaming analysis.
//
// Ring is an abstract first-in first-out container: samples are pushed at
// the back, read from the front without being consumed, and dropped from
// the front in bulk. Storage is delegated to a generic double-ended queue,
// so growth is amortized and no sample is ever copied on drop.
package buffer
