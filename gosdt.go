/*
Package gosdt is the model-representation layer of an optimal sparse
decision tree learner: it gives trees discovered by a search engine a
canonical identity so equal subtrees can be interned and shared,
reconciles subtrees built under different binary feature encodings, and
exports trees to an interchange document, optionally collapsing
cascades of binary splits into multi-way nodes.
*/
package gosdt

import (
	"context"
	"fmt"
	"io"

	"github.com/ubc-systopia/gosdt-guesses/dataset"
	"github.com/ubc-systopia/gosdt-guesses/model"
	"github.com/ubc-systopia/gosdt-guesses/model/export"
)

// Version is the released version of the module.
const Version = "0.1.0"

/*
Export renders the given tree against the dataset it was built on,
applying encoding reconciliation and, when the dataset configuration
requests non-binary output, N-ary promotion, and writes the resulting
document as JSON onto the io.Writer.
*/
func Export(ctx context.Context, m *model.Model, ds dataset.Dataset, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	doc, err := m.Document(ds)
	if err != nil {
		return fmt.Errorf("exporting tree: %w", err)
	}
	data, err := export.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("exporting tree: encoding document: %v", err)
	}
	_, err = w.Write(data)
	return err
}
