// Package sweep drives a sieve through all eight octants around a viewpoint.
//
// Obstacles are clipped to each 45° wedge before they reach the sieve, so
// every endpoint handed to Tanify has a parameter close to [0, 1]. Pieces
// that only touch the viewpoint are reduced to the single direction they
// occupy. Batch runs many viewpoints at once, one sieve per viewpoint.
package sweep
