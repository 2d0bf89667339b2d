/*
Package array implements DataArray, a small immutable labeled N-dimensional array with named
dimensions, coordinates, string attributes and chunking along the first dimension.

Binary operations align their operands by dimension name, the way labeled array libraries do,
and drop attributes from the result. MapBlocks runs a function over the chunks of an array on a
bounded goroutine pool and joins the results.
*/
package array
