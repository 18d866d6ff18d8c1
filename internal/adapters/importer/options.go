package importer

// Option applies a configuration option to the Importer.
type Option func(*Importer)

// WithDuplicatePolicy selects how rows whose contest is already stored are
// handled. Unknown policies are ignored.
func WithDuplicatePolicy(policy DuplicatePolicy) Option {
	return func(im *Importer) {
		switch policy {
		case DuplicateSkip, DuplicateReplace, DuplicateError:
			im.policy = policy
		}
	}
}
