// Package autograd is a small reverse-mode automatic-differentiation tape
// over gonum dense matrices, sized for the graph-autoencoder models in
// this module.
//
// What:
//
//   - Tensor couples a value matrix with an optional gradient matrix.
//   - Tape records one backward closure per primitive operation in forward
//     order and replays them in reverse from a scalar loss.
//   - Primitives cover dense linear algebra (MatMul, Transpose, Add, Sub,
//     Scale, MulElem, row broadcasts), pointwise nonlinearities (ReLU,
//     LeakyReLU, Sigmoid, Log, Clamp), reductions (MeanAll), batch
//     normalization, and the gather/scatter/segment-softmax family that
//     message passing and attention are built from.
//
// Why:
//
//   - Both autoencoder variants need gradients through graph convolutions
//     and attention; a tape keeps each layer's forward code declarative
//     while the backward pass falls out mechanically.
//
// Concurrency:
//
//   - Tapes are single-threaded by design: the training loop is strictly
//     sequential, one graph at a time, one tape per step.
//
// Errors:
//
//   - Shape mismatches panic, matching gonum/mat's own convention for
//     programmer errors; no user input reaches this package unvalidated.
package autograd
