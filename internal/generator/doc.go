// Package generator produces lotto number sets.
//
// Sets are built by weighted roulette selection over the 45 ball numbers.
// Weights come from historical draw frequencies: the hot strategy favors
// numbers drawn often, the cold strategy favors numbers drawn rarely, and
// the mixed strategy rotates between the two across sets. Without
// frequency data the generator falls back to uniform random sampling.
//
// A balance filter keeps each set at two to four odd numbers, and an
// outer retry loop discards sets with too many consecutive numbers or
// sets that were generated before. The random source is injectable so
// tests can run against a fixed seed.
package generator
