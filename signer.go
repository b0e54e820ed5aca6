package dilithium

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/KarpelesLab/dilithium/prng"
)

// tracerName is the instrumentation scope of the default tracer.
const tracerName = "github.com/KarpelesLab/dilithium"

// Span attribute keys.
const (
	attrParams     = "dilithium.params"
	attrAttempts   = "dilithium.attempts"
	attrMessageLen = "dilithium.message_len"
	attrValid      = "dilithium.valid"
)

// Signer is a stateful front end bound to one parameter set. It holds at
// most one key pair, set by Generate or Initialize, and signs in attached
// mode (signature || message) by default.
//
// A Signer is safe for concurrent use.
type Signer struct {
	p           *params
	rand        io.Reader
	log         *slog.Logger
	tracer      trace.Tracer
	maxAttempts int
	selfTest    bool

	mu sync.RWMutex
	pk *PublicKey
	sk *PrivateKey
}

// Option configures a Signer.
type Option func(*Signer)

// WithRand sets the randomness source used for key generation and, in
// randomized builds, for signing. The default is prng.Reader.
func WithRand(r io.Reader) Option {
	return func(s *Signer) { s.rand = r }
}

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(s *Signer) {
		if l != nil {
			s.log = l
		}
	}
}

// WithTracer sets the tracer used for Generate, Sign and Verify spans.
func WithTracer(t trace.Tracer) Option {
	return func(s *Signer) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithMaxAttempts caps the number of rejection sampling iterations per
// signature. Zero means unbounded. Hitting the cap fails with
// ErrTooManyAttempts; with honest parameters the expected count is below 6.
func WithMaxAttempts(n int) Option {
	return func(s *Signer) {
		if n >= 0 {
			s.maxAttempts = n
		}
	}
}

// WithSelfTest enables the pairwise consistency test after Generate.
func WithSelfTest(enabled bool) Option {
	return func(s *Signer) { s.selfTest = enabled }
}

// NewSigner returns an uninitialized Signer for set.
func NewSigner(set ParameterSet, opts ...Option) (*Signer, error) {
	p, err := paramsFor(set)
	if err != nil {
		return nil, err
	}
	s := &Signer{
		p:      p,
		rand:   prng.Reader(),
		log:    slog.New(slog.DiscardHandler),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("module", "dilithium", "params", p.name)
	return s, nil
}

// ParameterSet returns the parameter set the Signer is bound to.
func (s *Signer) ParameterSet() ParameterSet {
	return s.p.set
}

// Generate creates a key pair, runs the self test when enabled, and
// initializes the Signer with it.
func (s *Signer) Generate(ctx context.Context) (*PublicKey, *PrivateKey, error) {
	_, span := s.tracer.Start(ctx, "dilithium.Generate", trace.WithAttributes(attribute.String(attrParams, s.p.name)))
	defer span.End()

	pk, sk, err := GenerateKey(s.p.set, s.rand)
	if err != nil {
		return nil, nil, s.fail(span, "generate", err)
	}
	if s.selfTest {
		if err := PairwiseConsistencyTest(pk, sk); err != nil {
			s.log.Error("key pair failed self test", "err", err)
			return nil, nil, s.fail(span, "generate", err)
		}
	}

	s.mu.Lock()
	s.pk, s.sk = pk, sk
	s.mu.Unlock()

	s.log.Info("generated key pair", "self_test", s.selfTest)
	span.SetStatus(codes.Ok, "")
	return pk, sk, nil
}

// Initialize loads a *PublicKey (verification only) or a *PrivateKey
// (signing and verification) of the Signer's parameter set.
func (s *Signer) Initialize(key any) error {
	var (
		pk *PublicKey
		sk *PrivateKey
	)
	switch k := key.(type) {
	case *PublicKey:
		if k == nil {
			return &CryptoError{Op: "initialize", Err: ErrInvalidPublicKey}
		}
		pk = k
	case *PrivateKey:
		if k == nil {
			return &CryptoError{Op: "initialize", Err: ErrInvalidPrivateKey}
		}
		sk = k
		pk = k.PublicKey()
	default:
		return &CryptoError{Op: "initialize", Err: fmt.Errorf("unsupported key type %T", key)}
	}
	if pk.p != s.p {
		return &CryptoError{Op: "initialize " + s.p.name, Err: ErrKeyMismatch}
	}

	s.mu.Lock()
	s.pk, s.sk = pk, sk
	s.mu.Unlock()
	s.log.Debug("initialized", "signer", sk != nil)
	return nil
}

// IsInitialized reports whether a key has been loaded.
func (s *Signer) IsInitialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pk != nil
}

// IsSigner reports whether the Signer holds a private key.
func (s *Signer) IsSigner() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sk != nil
}

func (s *Signer) keys() (*PublicKey, *PrivateKey) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pk, s.sk
}

// Sign signs msg and returns signature || msg.
func (s *Signer) Sign(ctx context.Context, msg []byte) ([]byte, error) {
	sig, err := s.SignDetached(ctx, msg)
	if err != nil {
		return nil, err
	}
	return append(sig, msg...), nil
}

// SignDetached signs msg and returns the signature alone. The context is
// checked between rejection sampling iterations.
func (s *Signer) SignDetached(ctx context.Context, msg []byte) ([]byte, error) {
	ctx, span := s.tracer.Start(ctx, "dilithium.Sign", trace.WithAttributes(
		attribute.String(attrParams, s.p.name),
		attribute.Int(attrMessageLen, len(msg)),
	))
	defer span.End()

	pk, sk := s.keys()
	switch {
	case pk == nil:
		return nil, s.fail(span, "sign", ErrNotInitialized)
	case sk == nil:
		return nil, s.fail(span, "sign", ErrNotSigner)
	}

	next := func(attempt int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.maxAttempts > 0 && attempt > s.maxAttempts {
			return ErrTooManyAttempts
		}
		return nil
	}
	sig, attempts, err := sk.sign(s.rand, msg, next)
	span.SetAttributes(attribute.Int(attrAttempts, attempts))
	if err != nil {
		if errors.Is(err, ErrTooManyAttempts) {
			s.log.Warn("signing attempt limit reached", "attempts", attempts)
		}
		return nil, s.fail(span, "sign", err)
	}

	s.log.Debug("signed message", "attempts", attempts, "message_len", len(msg))
	span.SetStatus(codes.Ok, "")
	return sig, nil
}

// Verify checks signed = signature || message and returns the message. It
// returns false when the Signer holds no key.
func (s *Signer) Verify(ctx context.Context, signed []byte) ([]byte, bool) {
	if len(signed) < s.p.signatureSize {
		span := s.startVerify(ctx, len(signed))
		defer span.End()
		s.verified(span, len(signed), false)
		return nil, false
	}
	sig, msg := signed[:s.p.signatureSize], signed[s.p.signatureSize:]
	if !s.VerifyDetached(ctx, msg, sig) {
		return nil, false
	}
	return msg, true
}

// VerifyDetached reports whether sig is a valid signature of msg. It
// returns false when the Signer holds no key.
func (s *Signer) VerifyDetached(ctx context.Context, msg, sig []byte) bool {
	span := s.startVerify(ctx, len(msg))
	defer span.End()

	pk, _ := s.keys()
	if pk == nil {
		s.log.Warn("verify called before initialization")
		s.verified(span, len(msg), false)
		return false
	}
	ok := pk.Verify(msg, sig)
	s.verified(span, len(msg), ok)
	return ok
}

func (s *Signer) startVerify(ctx context.Context, msgLen int) trace.Span {
	_, span := s.tracer.Start(ctx, "dilithium.Verify", trace.WithAttributes(
		attribute.String(attrParams, s.p.name),
		attribute.Int(attrMessageLen, msgLen),
	))
	return span
}

// verified records the outcome of a verification. No reason is given for a
// rejection.
func (s *Signer) verified(span trace.Span, msgLen int, ok bool) {
	span.SetAttributes(attribute.Bool(attrValid, ok))
	s.log.Debug("verified signature", "valid", ok, "message_len", msgLen)
}

// fail records err on span and wraps it with the operation name.
func (s *Signer) fail(span trace.Span, op string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	var ce *CryptoError
	if errors.As(err, &ce) {
		return err
	}
	return &CryptoError{Op: op + " " + s.p.name, Err: err}
}
