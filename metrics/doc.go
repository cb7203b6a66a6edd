// Package metrics provides the scalar sink agents and trainers write
// step-indexed metrics to. The ScalarWriter interface is deliberately tiny so
// users can plug TensorBoard exporters, time-series databases or test
// recorders; the built-in implementations cover CSV files per experiment
// directory, structured log emission, fan-out and discard.
package metrics
