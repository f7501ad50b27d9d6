package gnn

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/thermograph/autograd"
)

// ErrUnknownVariant indicates an unrecognized architecture name.
var ErrUnknownVariant = errors.New("gnn: unknown model variant")

// Variant selects one of the two autoencoder architectures at
// configuration time.
type Variant string

const (
	// VariantGCN is the 3-layer message-passing encoder with an
	// inner-product edge decoder (reconstructs structure).
	VariantGCN Variant = "gcn"
	// VariantGAT is the symmetric 2-layer attention encoder/decoder
	// (reconstructs node attributes).
	VariantGAT Variant = "gat"
)

// attnHeads is the attention head count of every GATConv.
const attnHeads = 8

// AutoEncoder is the shared encode/decode contract of both variants.
//
// Encode maps node attributes and connectivity to latent embeddings.
// Decode's meaning differs per variant: VariantGCN yields an N×N pairwise
// adjacency score matrix, VariantGAT an N×1 attribute reconstruction.
type AutoEncoder interface {
	Encode(t *autograd.Tape, g *Tensors) *autograd.Tensor
	Decode(t *autograd.Tape, g *Tensors, z *autograd.Tensor) *autograd.Tensor

	// Params returns every trainable tensor in fixed traversal order.
	Params() []*autograd.Tensor
	// Named returns the same tensors keyed by stable names for checkpoints.
	Named() map[string]*autograd.Tensor
	// Norms returns the batch-norm layers keyed by stable names, so their
	// running statistics travel with checkpoints.
	Norms() map[string]*BatchNorm
	// SetTraining toggles batch-norm between batch and running statistics.
	SetTraining(training bool)
	Variant() Variant
}

// New constructs the requested variant with scalar (width-1) node input.
// Weights are Glorot-uniform from rng; pass a seeded source for
// reproducible runs.
func New(v Variant, hidden, output int, rng *rand.Rand) (AutoEncoder, error) {
	switch v {
	case VariantGCN:
		return newGCNAutoEncoder(rng, hidden, output), nil
	case VariantGAT:
		return newGATAutoEncoder(rng, hidden, output), nil
	default:
		return nil, fmt.Errorf("gnn: %q: %w", v, ErrUnknownVariant)
	}
}
