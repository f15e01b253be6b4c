package hub

import (
	"encoding/hex"
	"fmt"
	"net"
	"strconv"
	"strings"
	"unicode"

	"github.com/gosnmp/gosnmp"
	"github.com/sirupsen/logrus"

	"github.com/cablekit/hubctl/internal/snmp"
)

// snmpSession talks SNMP v2c straight to the hub's agent on UDP 161. Useful
// for hubs in modem mode where the web interface is unreachable but the
// agent still answers on the LAN side.
type snmpSession struct {
	client *gosnmp.GoSNMP
	log    *logrus.Entry

	pendingApply bool
}

func openSNMP(opts Options) (Session, error) {
	host := opts.Host
	port := uint16(161)
	if h, p, err := net.SplitHostPort(opts.Host); err == nil {
		n, err := strconv.ParseUint(p, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("malformed SNMP port in %q: %w", opts.Host, err)
		}
		host = h
		port = uint16(n)
	}

	community := opts.Community
	if community == "" {
		community = "public"
	}

	client := &gosnmp.GoSNMP{
		Target:    host,
		Port:      port,
		Community: community,
		Version:   gosnmp.Version2c,
		Timeout:   opts.Timeout,
		Retries:   3,
	}
	if err := client.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to SNMP agent on %s: %w", opts.Host, err)
	}

	return &snmpSession{
		client: client,
		log:    logrus.WithField("hub", opts.Host),
	}, nil
}

// Login is a no-op: community-based SNMP carries its credentials on every
// packet.
func (s *snmpSession) Login(username, password string) error {
	s.log.Debug("direct SNMP transport, skipping login")
	return nil
}

func (s *snmpSession) Close() error {
	if s.client == nil {
		return nil
	}
	err := s.client.Conn.Close()
	s.client = nil
	return err
}

func (s *snmpSession) SNMPGet(oid string) (string, error) {
	values, err := s.SNMPGets([]string{oid})
	if err != nil {
		return "", err
	}
	value, ok := values[oid]
	if !ok {
		return "", fmt.Errorf("agent returned no value for OID %s", oid)
	}
	return value, nil
}

func (s *snmpSession) SNMPGets(oids []string) (map[string]string, error) {
	packet, err := s.client.Get(oids)
	if err != nil {
		return nil, fmt.Errorf("SNMP get failed: %w", err)
	}
	out := make(map[string]string, len(packet.Variables))
	for _, pdu := range packet.Variables {
		out[strings.TrimPrefix(pdu.Name, ".")] = pduString(pdu)
	}
	return out, nil
}

func (s *snmpSession) SNMPSet(oid, value string, dt snmp.Type) error {
	if err := s.rawSet(oid, value, dt); err != nil {
		return err
	}
	s.pendingApply = true
	return nil
}

func (s *snmpSession) rawSet(oid, value string, dt snmp.Type) error {
	pdu := gosnmp.SnmpPDU{Name: "." + oid}
	switch dt {
	case snmp.TypeInt, snmp.TypePort:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("not an integer value for OID %s: %q", oid, value)
		}
		pdu.Type = gosnmp.Integer
		pdu.Value = n
	default:
		pdu.Type = gosnmp.OctetString
		if strings.HasPrefix(value, "$") {
			// Dollar-hex values travel as raw octets on the wire.
			raw, err := hex.DecodeString(value[1:])
			if err != nil {
				return fmt.Errorf("malformed hex value for OID %s: %w", oid, err)
			}
			pdu.Value = raw
		} else {
			pdu.Value = value
		}
	}

	packet, err := s.client.Set([]gosnmp.SnmpPDU{pdu})
	if err != nil {
		return fmt.Errorf("SNMP set failed: %w", err)
	}
	if packet.Error != gosnmp.NoError {
		return &SetRefusedError{OID: oid, Response: packet.Error.String()}
	}
	return nil
}

func (s *snmpSession) SNMPWalk(oid string) (map[string]string, error) {
	results := make(map[string]string)
	err := s.client.BulkWalk(oid, func(pdu gosnmp.SnmpPDU) error {
		results[strings.TrimPrefix(pdu.Name, ".")] = pduString(pdu)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("SNMP walk failed: %w", err)
	}
	return results, nil
}

func (s *snmpSession) ApplySettings() error {
	if !s.pendingApply {
		return nil
	}
	if err := s.rawSet(applyOID, "1", snmp.TypeInt); err != nil {
		return err
	}
	s.pendingApply = false
	return nil
}

// pduString renders a PDU value in the same textual form the HTTP proxy
// uses, so the property codecs work on either transport.
func pduString(pdu gosnmp.SnmpPDU) string {
	switch pdu.Type {
	case gosnmp.OctetString:
		raw := pdu.Value.([]byte)
		if isPrintable(raw) {
			return string(raw)
		}
		return "$" + hex.EncodeToString(raw)
	case gosnmp.IPAddress:
		return pdu.Value.(string)
	case gosnmp.Integer:
		return strconv.Itoa(pdu.Value.(int))
	case gosnmp.Counter32, gosnmp.Gauge32, gosnmp.TimeTicks:
		return strconv.FormatUint(uint64(pdu.Value.(uint)), 10)
	case gosnmp.Counter64:
		return strconv.FormatUint(pdu.Value.(uint64), 10)
	default:
		return fmt.Sprintf("%v", pdu.Value)
	}
}

func isPrintable(raw []byte) bool {
	for _, b := range raw {
		if b > unicode.MaxASCII || (!unicode.IsPrint(rune(b)) && b != '\n' && b != '\t') {
			return false
		}
	}
	return true
}
