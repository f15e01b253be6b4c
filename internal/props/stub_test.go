package props

import (
	"fmt"

	"github.com/cablekit/hubctl/internal/snmp"
)

type setCall struct {
	oid   string
	value string
	dt    snmp.Type
}

// stubSession is an in-memory collaborator with call counters.
type stubSession struct {
	values map[string]string
	walks  map[string]map[string]string

	sets       []setCall
	loginCalls int
	closeCalls int
	applyCalls int
}

func newStubSession() *stubSession {
	return &stubSession{
		values: make(map[string]string),
		walks:  make(map[string]map[string]string),
	}
}

func (s *stubSession) Login(username, password string) error {
	s.loginCalls++
	return nil
}

func (s *stubSession) Close() error {
	s.closeCalls++
	return nil
}

func (s *stubSession) SNMPGet(oid string) (string, error) {
	value, ok := s.values[oid]
	if !ok {
		return "", fmt.Errorf("stub has no value for OID %s", oid)
	}
	return value, nil
}

func (s *stubSession) SNMPGets(oids []string) (map[string]string, error) {
	out := make(map[string]string, len(oids))
	for _, oid := range oids {
		value, err := s.SNMPGet(oid)
		if err != nil {
			return nil, err
		}
		out[oid] = value
	}
	return out, nil
}

func (s *stubSession) SNMPSet(oid, value string, dt snmp.Type) error {
	s.sets = append(s.sets, setCall{oid: oid, value: value, dt: dt})
	s.values[oid] = value
	return nil
}

func (s *stubSession) SNMPWalk(oid string) (map[string]string, error) {
	walk, ok := s.walks[oid]
	if !ok {
		return map[string]string{}, nil
	}
	return walk, nil
}

func (s *stubSession) ApplySettings() error {
	s.applyCalls++
	return nil
}
