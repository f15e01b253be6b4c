// Package hub is the device-control client for the cable-modem router.
//
// The hub exposes its SNMP agent two ways: proxied over its web interface
// (the stock firmware behavior) and, on some installations, directly over
// UDP 161. Both transports sit behind the Session interface so the command
// layer never cares which one is in use.
package hub

import (
	"fmt"
	"time"

	"github.com/cablekit/hubctl/internal/snmp"
)

// Default connection settings for a factory-fresh hub.
const (
	DefaultHost     = "192.168.0.1"
	DefaultUsername = "admin"
	DefaultTimeout  = 30 * time.Second
)

// Transport names accepted in Options.Transport.
const (
	TransportHTTP = "http"
	TransportSNMP = "snmp"
)

// Options configures a session to one hub.
type Options struct {
	Host      string
	Username  string
	Password  string
	Transport string
	Community string
	Timeout   time.Duration
}

// Session is an open connection to one hub. A session is created per CLI
// invocation and must be closed on every control path.
type Session interface {
	// Login authenticates the session. On the HTTP transport this obtains
	// the credential cookie used by subsequent requests; on the direct SNMP
	// transport authentication is carried by the community string and Login
	// is a no-op.
	Login(username, password string) error

	// Close releases the session, logging out first when authenticated.
	Close() error

	// SNMPGet fetches a single OID value.
	SNMPGet(oid string) (string, error)

	// SNMPGets fetches several OIDs in one round trip.
	SNMPGets(oids []string) (map[string]string, error)

	// SNMPSet writes a single OID value with the given datatype.
	SNMPSet(oid, value string, dt snmp.Type) error

	// SNMPWalk traverses the subtree below oid. Keys are full OIDs.
	SNMPWalk(oid string) (map[string]string, error)

	// ApplySettings commits any writes made since the last apply. The hub
	// stages SNMP sets and only activates them once this fires.
	ApplySettings() error
}

// Open creates a session bound to the host in opts. The caller owns the
// returned session and must Close it.
func Open(opts Options) (Session, error) {
	if opts.Host == "" {
		opts.Host = DefaultHost
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	switch opts.Transport {
	case "", TransportHTTP:
		return openHTTP(opts)
	case TransportSNMP:
		return openSNMP(opts)
	default:
		return nil, fmt.Errorf("unknown transport %q", opts.Transport)
	}
}

// applyOID is the magic OID that commits staged settings.
const applyOID = "1.3.6.1.4.1.4115.1.20.1.1.9.0"
