// Package train runs the fixed-epoch training loop over a normalized
// graph corpus.
//
// What:
//
//   - Config bundles the architecture choice and every hyperparameter
//     (widths, epochs, learning rate, loss weights, clamp epsilon, seed)
//     into one explicit struct; there is no ambient device or
//     environment-variable configuration.
//   - Trainer iterates epochs × graphs in corpus order: build tensors,
//     encode, decode, loss, backward, one Adam step per graph. The mean
//     per-graph loss of each epoch lands in LossHistory and the OnEpoch
//     hook.
//   - VariantGCN trains under a weighted binary cross-entropy against the
//     graph's 0/1 adjacency matrix (positive class 10× the negative, to
//     offset adjacency sparsity), with predicted probabilities clamped to
//     [ε/2, 1−ε], ε = 0.5, before the logarithm. VariantGAT trains under
//     plain mean squared error against the input attributes.
//
// Termination is the fixed epoch count: no early stopping, no convergence
// check. Evaluate computes the same mean loss without touching weights,
// which doubles as the epoch-0 baseline.
//
// Errors:
//
//   - ErrBadConfig: non-positive widths/rate/weights or ε outside (0, 2/3].
//   - ErrEmptyCorpus: nothing to train on.
package train
