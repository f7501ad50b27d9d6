// Package persist caches pipeline artifacts on disk as JSON.
//
// What:
//   - Corpus cache: the region-adjacency corpus built from a raw stack,
//     keyed by the segmentation parameters that produced it.
//   - Model checkpoint: the named parameter matrices of a trained
//     autoencoder, keyed by variant and layer widths.
//
// Why: segmentation and training dominate the pipeline's runtime, so both
// stages are skipped on a warm cache. Filenames encode the parameters to
// keep caches for different configurations from colliding.
//
// Errors:
//   - LoadCorpus wraps ErrCorrupt when a cached graph fails validation.
//   - LoadModel wraps ErrShape when a stored matrix does not match the
//     target model's parameter dimensions, and ErrCorrupt when a parameter
//     is missing or unknown.
//   - Cache misses surface as the underlying fs.ErrNotExist.
package persist
