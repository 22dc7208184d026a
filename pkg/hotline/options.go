package hotline

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Options configures a Session before Connect is called.
type Options struct {
	// Address is the server host, without port.
	Address string `validate:"required,hostname_port|hostname|ip"`
	// Port is the control-channel port, commonly 5500.
	Port uint16 `validate:"required"`
	// Login is the account login name. Use an empty string for guest
	// access on servers that allow it.
	Login string
	// Password is the account password, sent obfuscated on the wire.
	Password string
	// DisplayName is the name other users see in the user list and chat.
	DisplayName string `validate:"required"`
	// IconID selects the user's icon.
	IconID uint16
	// ConnectTimeout bounds the TCP dial and control handshake.
	ConnectTimeout time.Duration
	// ReplyTimeout bounds how long request/reply operations wait for a
	// matching reply before failing with KindTimeout.
	ReplyTimeout time.Duration
	// AgreementTimeout bounds how long AcceptAgreement waits for its
	// acknowledgement before treating the call as successful anyway.
	AgreementTimeout time.Duration
	// KeepAliveInterval is how often the keep-alive loop sends a frame to
	// hold the connection open.
	KeepAliveInterval time.Duration
	// Metrics, if non-nil, receives counters for transactions, replies,
	// timeouts, and transfer bytes. Construct one with NewMetrics and a
	// registerer; leave nil to disable metrics entirely.
	Metrics *Metrics
}

// defaults fills zero-valued timing fields with the protocol's defaults.
func (o *Options) defaults() {
	if o.ConnectTimeout == 0 {
		o.ConnectTimeout = 10 * time.Second
	}
	if o.ReplyTimeout == 0 {
		o.ReplyTimeout = 10 * time.Second
	}
	if o.AgreementTimeout == 0 {
		o.AgreementTimeout = 5 * time.Second
	}
	if o.KeepAliveInterval == 0 {
		o.KeepAliveInterval = 180 * time.Second
	}
}

func (o *Options) validateOptions() error {
	return validate.Struct(o)
}
