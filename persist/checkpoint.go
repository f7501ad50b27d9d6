package persist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/thermograph/gnn"
)

// matrixJSON is the on-disk form of one parameter matrix.
type matrixJSON struct {
	Rows int       `json:"rows"`
	Cols int       `json:"cols"`
	Data []float64 `json:"data"`
}

// normJSON is the on-disk form of one batch-norm layer's running
// statistics. Gamma and beta live among the named parameters.
type normJSON struct {
	Mean []float64 `json:"mean"`
	Var  []float64 `json:"var"`
}

// checkpointJSON is the complete on-disk checkpoint.
type checkpointJSON struct {
	Params map[string]matrixJSON `json:"params"`
	Norms  map[string]normJSON   `json:"norms"`
}

// CheckpointPath returns the checkpoint filename for a model of the given
// variant and layer widths, rooted at dir.
func CheckpointPath(dir string, v gnn.Variant, hidden, output int) string {
	return filepath.Join(dir, fmt.Sprintf("auto_%s_h%d_o%d.json", v, hidden, output))
}

// SaveModel writes every named parameter and batch-norm running statistic
// of the model to path as JSON.
func SaveModel(path string, model gnn.AutoEncoder) error {
	named := model.Named()
	ck := checkpointJSON{
		Params: make(map[string]matrixJSON, len(named)),
		Norms:  make(map[string]normJSON),
	}
	for name, p := range named {
		r, c := p.Value.Dims()
		data := make([]float64, 0, r*c)
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				data = append(data, p.Value.At(i, j))
			}
		}
		ck.Params[name] = matrixJSON{Rows: r, Cols: c, Data: data}
	}
	for name, bn := range model.Norms() {
		ck.Norms[name] = normJSON{
			Mean: append([]float64(nil), bn.RunMean...),
			Var:  append([]float64(nil), bn.RunVar...),
		}
	}
	buf, err := json.Marshal(ck)
	if err != nil {
		return fmt.Errorf("persist: encode checkpoint: %w", err)
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("persist: write checkpoint: %w", err)
	}
	return nil
}

// LoadModel reads a checkpoint from path into the model's named parameters
// and batch-norm running statistics. The checkpoint must carry exactly the
// model's parameter set and every matrix must match its target's
// dimensions.
func LoadModel(path string, model gnn.AutoEncoder) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("persist: read checkpoint: %w", err)
	}
	var ck checkpointJSON
	if err := json.Unmarshal(buf, &ck); err != nil {
		return fmt.Errorf("persist: decode checkpoint: %v: %w", err, ErrCorrupt)
	}

	named := model.Named()
	if len(ck.Params) != len(named) {
		return fmt.Errorf("persist: checkpoint has %d parameters, model has %d: %w", len(ck.Params), len(named), ErrCorrupt)
	}
	for name, p := range named {
		m, ok := ck.Params[name]
		if !ok {
			return fmt.Errorf("persist: checkpoint missing parameter %q: %w", name, ErrCorrupt)
		}
		r, c := p.Value.Dims()
		if m.Rows != r || m.Cols != c {
			return fmt.Errorf("persist: parameter %q is %dx%d, model expects %dx%d: %w", name, m.Rows, m.Cols, r, c, ErrShape)
		}
		if len(m.Data) != r*c {
			return fmt.Errorf("persist: parameter %q has %d values for a %dx%d matrix: %w", name, len(m.Data), r, c, ErrShape)
		}
		p.Value.Copy(mat.NewDense(r, c, m.Data))
	}

	norms := model.Norms()
	if len(ck.Norms) != len(norms) {
		return fmt.Errorf("persist: checkpoint has %d norm layers, model has %d: %w", len(ck.Norms), len(norms), ErrCorrupt)
	}
	for name, bn := range norms {
		n, ok := ck.Norms[name]
		if !ok {
			return fmt.Errorf("persist: checkpoint missing norm layer %q: %w", name, ErrCorrupt)
		}
		if len(n.Mean) != len(bn.RunMean) || len(n.Var) != len(bn.RunVar) {
			return fmt.Errorf("persist: norm layer %q has %d channels, model expects %d: %w", name, len(n.Mean), len(bn.RunMean), ErrShape)
		}
		copy(bn.RunMean, n.Mean)
		copy(bn.RunVar, n.Var)
	}
	return nil
}
