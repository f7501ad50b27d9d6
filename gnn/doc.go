// Package gnn implements the two graph-autoencoder architectures the
// pipeline trains: a message-passing encoder with an inner-product edge
// decoder, and a symmetric attention-based encoder/decoder pair.
//
// What:
//
//   - Tensors lifts a region graph into model inputs: the N×1 attribute
//     column, symmetric edge index pairs with self-loops, and the
//     degree-normalized adjacency Â = D^-1/2 (A+I) D^-1/2.
//   - GCNConv, BatchNorm, and GATConv are the layers; both variants are
//     assembled from them behind the AutoEncoder interface
//     (Encode/Decode/Params/mode).
//   - VariantGCN stacks three graph convolutions (batch-normalized, ReLU
//     between, final layer un-activated) and decodes a full pairwise
//     adjacency score matrix as sigmoid(Z·Zᵀ), the O(N²) dense core.
//   - VariantGAT encodes 1→H→O with two multi-head attention convolutions
//     (heads concatenated, then averaged) and decodes by running the same
//     architecture in reverse, O→H→1, reconstructing node attributes.
//   - Adam is the optimizer both variants train under.
//
// The two variants deliberately reconstruct different things: VariantGCN
// only structure, VariantGAT only attributes. That asymmetry is part of
// the experiment's design and is preserved, not unified.
//
// Determinism:
//
//   - All weights are Glorot-uniform from a caller-seeded rand source, and
//     parameter traversal order is fixed, so runs are reproducible.
package gnn
