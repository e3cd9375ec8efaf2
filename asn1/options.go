package asn1

// DefaultMaxDepth is the deepest nesting of elements accepted by Parse unless
// WithMaxDepth says otherwise.
const DefaultMaxDepth = 64

type options struct {
	MaxDepth         int
	MaxContentLength int
	Encapsulation    bool
	BER              bool
}

// ParseOption is the type used to pass custom attributes to Parse.
type ParseOption func(o *options)

func newOptions() *options {
	return &options{
		MaxDepth:         DefaultMaxDepth,
		MaxContentLength: DefaultMaxContentLength,
		Encapsulation:    true,
	}
}

func (o *options) apply(opts []ParseOption) *options {
	for _, fn := range opts {
		fn(o)
	}
	return o
}

// WithMaxDepth is an option that sets the deepest nesting level accepted.
// The root element is at depth 1.
func WithMaxDepth(n int) ParseOption {
	return func(o *options) {
		o.MaxDepth = n
	}
}

// WithMaxContentLength is an option that sets the largest content length a
// single TLV may declare.
func WithMaxContentLength(n int) ParseOption {
	return func(o *options) {
		o.MaxContentLength = n
	}
}

// WithoutEncapsulation is an option that keeps every OCTET STRING opaque
// instead of trying to parse its content as nested elements.
func WithoutEncapsulation() ParseOption {
	return func(o *options) {
		o.Encapsulation = false
	}
}

// WithBER is an option that accepts non-minimal length octets. Tree
// re-encoding always produces DER, so such inputs do not round trip.
func WithBER() ParseOption {
	return func(o *options) {
		o.BER = true
	}
}
