package archive

import "github.com/hashicorp/go-hclog"

// options carries reader construction settings. Most callers need
// none of these; Open's zero-value behavior (no logging, no AEAD key)
// covers unencrypted packages with quiet diagnostics.
type options struct {
	logger hclog.Logger
	key    []byte
}

// Option configures Open.
type Option func(*options)

// WithLogger attaches a structured logger. The default is a null
// logger that discards everything.
func WithLogger(l hclog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithKey supplies the 32-byte AEAD key used to decrypt entries whose
// flags mark them encrypted. Opening an encrypted package without a
// key succeeds; reading from an encrypted entry without a key fails
// when pkg/stream reaches it.
func WithKey(key []byte) Option {
	return func(o *options) { o.key = key }
}

func newOptions(opts []Option) options {
	o := options{logger: hclog.NewNullLogger()}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
