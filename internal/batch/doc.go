// Package batch fans independent model files out to a bounded worker pool
// and hands every outcome, success or failure, to a single visit callback.
//
// A failed model never stops the batch; only a visit error or context
// cancellation does.
package batch
