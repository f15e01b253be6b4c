package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/cablekit/hubctl/internal/hub"
	"github.com/cablekit/hubctl/internal/snmp"
)

// fakeSession records the session lifecycle calls the dispatcher makes.
type fakeSession struct {
	loginUser     string
	loginPassword string
	loginCalls    int
	closeCalls    int
}

func (s *fakeSession) Login(username, password string) error {
	s.loginCalls++
	s.loginUser = username
	s.loginPassword = password
	return nil
}

func (s *fakeSession) Close() error {
	s.closeCalls++
	return nil
}

func (s *fakeSession) SNMPGet(oid string) (string, error) { return "", nil }

func (s *fakeSession) SNMPGets(oids []string) (map[string]string, error) {
	return map[string]string{}, nil
}

func (s *fakeSession) SNMPSet(oid, value string, dt snmp.Type) error { return nil }

func (s *fakeSession) SNMPWalk(oid string) (map[string]string, error) {
	return map[string]string{}, nil
}

func (s *fakeSession) ApplySettings() error { return nil }

// harness wires a registry to a fake opener and a root command carrying the
// global connection flags.
type harness struct {
	registry *Registry
	session  *fakeSession

	openCalls int
	openOpts  hub.Options
}

func newHarness() *harness {
	h := &harness{session: &fakeSession{}}
	h.registry = &Registry{
		Open: func(opts hub.Options) (hub.Session, error) {
			h.openCalls++
			h.openOpts = opts
			return h.session, nil
		},
		LookupPassword: func() (string, error) { return "", nil },
	}
	return h
}

func (h *harness) run(t *testing.T, args ...string) error {
	t.Helper()
	root := &cli.Command{
		Name: "hubctl",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "host", Value: hub.DefaultHost},
			&cli.StringFlag{Name: "username", Value: hub.DefaultUsername},
			&cli.StringFlag{Name: "password"},
			&cli.StringFlag{Name: "transport", Value: hub.TransportHTTP},
			&cli.StringFlag{Name: "community"},
		},
		Commands: h.registry.Commands(),
	}
	return root.Run(context.Background(), append([]string{"hubctl"}, args...))
}

func TestDispatch_OpensLogsInAndCloses(t *testing.T) {
	h := newHarness()
	ran := false
	require.NoError(t, h.registry.Register(Command{
		Name: "info",
		Run: func(ctx context.Context, session hub.Session, args []string) error {
			ran = true
			return nil
		},
	}))

	require.NoError(t, h.run(t, "--password", "s3cret", "info"))
	assert.True(t, ran)
	assert.Equal(t, 1, h.openCalls)
	assert.Equal(t, 1, h.session.loginCalls)
	assert.Equal(t, "admin", h.session.loginUser)
	assert.Equal(t, "s3cret", h.session.loginPassword)
	assert.Equal(t, 1, h.session.closeCalls)
}

func TestDispatch_FlagsReachTheOpener(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.registry.Register(Command{Name: "info", Run: nopHandler}))

	require.NoError(t, h.run(t,
		"--host", "10.0.0.2",
		"--username", "operator",
		"--password", "pw",
		"--transport", "snmp",
		"--community", "private",
		"info"))

	assert.Equal(t, hub.Options{
		Host:      "10.0.0.2",
		Username:  "operator",
		Password:  "pw",
		Transport: "snmp",
		Community: "private",
	}, h.openOpts)
}

func TestDispatch_NoPasswordRunsUnauthenticated(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.registry.Register(Command{Name: "info", Run: nopHandler}))

	require.NoError(t, h.run(t, "info"))
	assert.Equal(t, 1, h.openCalls)
	assert.Zero(t, h.session.loginCalls)
	assert.Equal(t, 1, h.session.closeCalls)
}

func TestDispatch_NoLoginSkipsLogin(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.registry.Register(Command{Name: "wanstatus", Run: nopHandler}, NoLogin()))

	require.NoError(t, h.run(t, "--password", "pw", "wanstatus"))
	assert.Equal(t, 1, h.openCalls)
	assert.Zero(t, h.session.loginCalls)
}

func TestDispatch_NoHubNeverOpens(t *testing.T) {
	h := newHarness()
	ran := false
	require.NoError(t, h.registry.Register(Command{
		Name: "properties",
		RunNoHub: func(ctx context.Context, args []string) error {
			ran = true
			return nil
		},
	}, NoHub()))

	require.NoError(t, h.run(t, "properties"))
	assert.True(t, ran)
	assert.Zero(t, h.openCalls)
}

func TestDispatch_StoredPasswordUsedWhenFlagEmpty(t *testing.T) {
	h := newHarness()
	h.registry.LookupPassword = func() (string, error) { return "from-keyring", nil }
	require.NoError(t, h.registry.Register(Command{Name: "info", Run: nopHandler}))

	require.NoError(t, h.run(t, "info"))
	assert.Equal(t, "from-keyring", h.openOpts.Password)
	assert.Equal(t, 1, h.session.loginCalls)
}

func TestDispatch_PasswordFlagWinsOverStore(t *testing.T) {
	h := newHarness()
	h.registry.LookupPassword = func() (string, error) { return "from-keyring", nil }
	require.NoError(t, h.registry.Register(Command{Name: "info", Run: nopHandler}))

	require.NoError(t, h.run(t, "--password", "explicit", "info"))
	assert.Equal(t, "explicit", h.openOpts.Password)
}

func TestDispatch_PasswordStoreErrorIsIgnored(t *testing.T) {
	h := newHarness()
	h.registry.LookupPassword = func() (string, error) { return "", errors.New("locked") }
	require.NoError(t, h.registry.Register(Command{Name: "info", Run: nopHandler}))

	require.NoError(t, h.run(t, "info"))
	assert.Equal(t, "", h.openOpts.Password)
	assert.Zero(t, h.session.loginCalls)
}

func TestDispatch_ValidatesArityBeforeOpening(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.registry.Register(Command{
		Name: "set_property",
		Args: []ArgSpec{{Name: "property"}, {Name: "value"}},
		Run:  nopHandler,
	}))

	assert.Error(t, h.run(t, "set_property", "name"), "missing argument")
	assert.Error(t, h.run(t, "set_property", "name", "a", "b"), "extra argument")
	assert.Zero(t, h.openCalls)
}

func TestDispatch_ValidatesChoicesBeforeOpening(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.registry.Register(Command{
		Name: "get_property",
		Args: []ArgSpec{{Name: "property", OneOrMore: true, Choices: []string{"name", "wan_mtu_size"}}},
		Run:  nopHandler,
	}))

	err := h.run(t, "get_property", "name", "no_such_property")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no_such_property")
	assert.Zero(t, h.openCalls)
}

func TestDispatch_GreedyArgConsumesTheRest(t *testing.T) {
	h := newHarness()
	var got []string
	require.NoError(t, h.registry.Register(Command{
		Name: "get_property",
		Args: []ArgSpec{{Name: "property", OneOrMore: true}},
		Run: func(ctx context.Context, session hub.Session, args []string) error {
			got = args
			return nil
		},
	}))

	require.NoError(t, h.run(t, "get_property", "name", "wan_mtu_size", "hardware_version"))
	assert.Equal(t, []string{"name", "wan_mtu_size", "hardware_version"}, got)
}

func TestDispatch_ClosesSessionWhenHandlerFails(t *testing.T) {
	h := newHarness()
	boom := errors.New("handler failed")
	require.NoError(t, h.registry.Register(Command{
		Name: "info",
		Run: func(ctx context.Context, session hub.Session, args []string) error {
			return boom
		},
	}))

	assert.ErrorIs(t, h.run(t, "info"), boom)
	assert.Equal(t, 1, h.session.closeCalls)
}

func TestDispatch_OpenFailureIsReturned(t *testing.T) {
	h := newHarness()
	refused := errors.New("connection refused")
	h.registry.Open = func(opts hub.Options) (hub.Session, error) { return nil, refused }
	require.NoError(t, h.registry.Register(Command{Name: "info", Run: nopHandler}))

	assert.ErrorIs(t, h.run(t, "info"), refused)
}
