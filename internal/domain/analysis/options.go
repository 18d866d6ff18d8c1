package analysis

// Option applies a configuration option to the Analyzer.
type Option func(*Analyzer)

// WithParallelism sets how many goroutines large subsets are partitioned
// across. Values below one are ignored; one keeps counting serial.
func WithParallelism(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.parallelism = n
		}
	}
}
