// Package skipta partitions finite spatial domains into disjoint, exhaustive
// index subsets.
//
// A Domain is anything that can report how many elements it holds and write
// the coordinates of its i-th element into a caller-supplied buffer. A
// Strategy decides which elements belong together. The Partitioner runs a
// single greedy pass over a random permutation of the domain and groups
// elements into buckets, comparing each element only against the first
// element inserted into each bucket. The result is a Partition: an ordered
// list of index subsets over the original domain, accessible by index or as
// lightweight views.
//
// Concrete strategies live in the strategy subpackage.
package skipta
