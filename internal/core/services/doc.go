// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The trainer and query engine live here. Both work on flat float32
// slices and use gonum's blas32 kernels for vector arithmetic.
package services
