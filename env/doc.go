// Package env contains reference core.Environment implementations used for
// examples, tests and quick experiments. The environments here are small,
// deterministic-by-seed and allocation-light; production simulators should
// implement core.Environment directly.
package env
