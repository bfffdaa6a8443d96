package gomap

// config collects per-call conversion settings.
type config struct {
	copyStrings bool
}

// Option adjusts a single ToNode or FromNode call.
type Option func(*config)

// CopyStrings makes string values land in fresh allocations instead of
// sharing backing storage with the source. Use it when the source buffer
// outlives the conversion or when the tree must not pin caller memory.
func CopyStrings() Option {
	return func(c *config) {
		c.copyStrings = true
	}
}

func newConfig(opts []Option) *config {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
