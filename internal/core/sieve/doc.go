// Package sieve computes the angular directions left open around a viewpoint
// once a set of line-segment obstacles has been applied.
//
// The angular domain of each 45° octant is mapped onto the parameter range
// [0, 1] by Tanify, which uses coordinate ratios instead of inverse
// trigonometry. A Sieve starts with a single open gap covering that range.
// For each octant the caller adds the obstacle segments with AddBlocks and
// subtracts the resulting blocks with MergeBlocks; the gap set carries over
// from one octant to the next while the block set is rebuilt each time.
//
// Octant layout around the centre:
//
//	  \ 6 | 7 /
//	  0 \ | / 1
//	  - -   - -
//	  2 / | \ 3
//	  / 4 | 5 \
//
// A Sieve is not safe for concurrent use. Run independent viewpoints on
// independent Sieves.
package sieve
