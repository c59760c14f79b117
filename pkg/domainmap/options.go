package domainmap

// DefaultDomains is the domain count used when none (or an invalid one) is given.
const DefaultDomains = 16

// Logger receives debug events from a Map. The application logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
}

// Option configures a Map at construction time.
type Option func(*options)

type options struct {
	domains int
	hasher  Hasher
	router  Router
	logger  Logger
}

func defaultOptions() options {
	return options{
		domains: DefaultDomains,
		hasher:  Murmur3{},
		router:  FieldRouter,
	}
}

// WithDomains sets the fixed number of domains N.
func WithDomains(n int) Option {
	return func(o *options) {
		o.domains = n
	}
}

// WithHasher sets the hash policy applied to key bytes.
func WithHasher(h Hasher) Option {
	return func(o *options) {
		o.hasher = h
	}
}

// WithRouter sets the domain routing policy.
func WithRouter(r Router) Option {
	return func(o *options) {
		o.router = r
	}
}

// WithLogger enables debug logging of inserts and removals.
func WithLogger(l Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
