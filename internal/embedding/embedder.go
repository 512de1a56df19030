package embedding

import "context"

// Embedder converts text into fixed-size numeric vectors. The output slice is
// parallel to the input.
type Embedder interface {
	Name() string
	Dimension() int
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}
