// SPDX-License-Identifier: MIT

package matrix

// Matrix is the read/write view shared by the arc matrices (cost, travel
// time, load) of a routing instance. *Dense is the only implementation in
// this module; the interface keeps kernels such as FloydWarshall usable on
// caller-provided storage.
type Matrix interface {
	Rows() int
	Cols() int

	// At is the bounds-checked read; ErrOutOfRange on a bad index.
	At(i, j int) (float64, error)

	// Set is the bounds-checked write; ErrOutOfRange on a bad index and
	// ErrNaNInf when v breaks the matrix's numeric policy.
	Set(i, j int, v float64) error

	// Clone deep-copies the storage. O(rows·cols).
	Clone() Matrix
}
