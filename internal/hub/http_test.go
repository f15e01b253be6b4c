package hub

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cablekit/hubctl/internal/snmp"
)

func newTestSession(t *testing.T, handler http.Handler) (*httpSession, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return &httpSession{
		baseURL: server.URL,
		host:    "test",
		client:  &http.Client{Timeout: 5 * time.Second},
		log:     logrus.WithField("hub", "test"),
		nonce:   "_n=12345&_=1",
	}, server
}

func loginBody(t *testing.T, attrs string) string {
	t.Helper()
	return base64.StdEncoding.EncodeToString([]byte(attrs))
}

func TestLogin_SetsCredentialCookie(t *testing.T) {
	var sawCookie string
	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(loginBody(t, `{"modelname":"TG2492LG","family":"hub3"}`)))
	})
	mux.HandleFunc("/snmpGet", func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie("credential"); err == nil {
			sawCookie = cookie.Value
		}
		w.Write([]byte(`{"1.2.3": "value"}`))
	})
	session, _ := newTestSession(t, mux)

	require.NoError(t, session.Login("admin", "secret"))
	assert.Equal(t, "TG2492LG", session.modelName)

	_, err := session.SNMPGet("1.2.3")
	require.NoError(t, err)
	assert.NotEmpty(t, sawCookie)
	assert.Equal(t, session.credential, sawCookie)
}

func TestLogin_EmptyBodyMeansBadCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {})
	session, _ := newTestSession(t, mux)

	err := session.Login("admin", "wrong")
	require.Error(t, err)
	var loginErr *LoginError
	assert.ErrorAs(t, err, &loginErr)
}

func TestSNMPGets_MultipleOIDs(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/snmpGet", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"1.2.3": "a", "4.5.6": "b"}`))
	})
	session, _ := newTestSession(t, mux)

	values, err := session.SNMPGets([]string{"1.2.3", "4.5.6"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"1.2.3": "a", "4.5.6": "b"}, values)
}

func TestSNMPWalk_StripsFirmwareNoise(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/walk", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{\"1.2.3.1\": \"a\",\nError in OID formatting!\n\"1.2.3.2\": \"b\",\n\"1\": \"Finish\"}"))
	})
	session, _ := newTestSession(t, mux)

	values, err := session.SNMPWalk("1.2.3")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"1.2.3.1": "a", "1.2.3.2": "b"}, values)
}

func TestSNMPSet_RefusedWhenOIDMissingFromResponse(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/snmpSet", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	session, _ := newTestSession(t, mux)

	err := session.SNMPSet("1.2.3", "value", snmp.TypeString)
	require.Error(t, err)
	var refused *SetRefusedError
	require.ErrorAs(t, err, &refused)
	assert.Equal(t, "1.2.3", refused.OID)
}

func TestSNMPSet_EscapesDollarInStrings(t *testing.T) {
	var sawQuery string
	mux := http.NewServeMux()
	mux.HandleFunc("/snmpSet", func(w http.ResponseWriter, r *http.Request) {
		sawQuery = r.URL.RawQuery
		w.Write([]byte(`{"1.2.3": "ok"}`))
	})
	session, _ := newTestSession(t, mux)

	require.NoError(t, session.SNMPSet("1.2.3", "$c0a80001", snmp.TypeString))
	assert.Contains(t, sawQuery, "%24c0a80001")
}

func TestApplySettings_OnlyAfterAWrite(t *testing.T) {
	var applied int
	mux := http.NewServeMux()
	mux.HandleFunc("/snmpSet", func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.RawQuery, applyOID) {
			applied++
		}
		w.Write([]byte(`{"` + applyOID + `": "ok", "1.2.3": "ok"}`))
	})
	session, _ := newTestSession(t, mux)

	// Nothing written yet, apply is a no-op.
	require.NoError(t, session.ApplySettings())
	assert.Equal(t, 0, applied)

	require.NoError(t, session.SNMPSet("1.2.3", "1", snmp.TypeInt))
	require.NoError(t, session.ApplySettings())
	assert.Equal(t, 1, applied)

	// Applied once, further applies are no-ops until the next write.
	require.NoError(t, session.ApplySettings())
	assert.Equal(t, 1, applied)
}

func TestDo_RetriesOn500(t *testing.T) {
	var calls int
	mux := http.NewServeMux()
	mux.HandleFunc("/snmpGet", func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"1.2.3": "a"}`))
	})
	session, _ := newTestSession(t, mux)

	value, err := session.SNMPGet("1.2.3")
	require.NoError(t, err)
	assert.Equal(t, "a", value)
	assert.Equal(t, 2, calls)
}

func TestClose_LogsOutWhenAuthenticated(t *testing.T) {
	var logouts int
	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(loginBody(t, `{"modelname":"m"}`)))
	})
	mux.HandleFunc("/logout", func(w http.ResponseWriter, r *http.Request) {
		logouts++
	})
	session, _ := newTestSession(t, mux)

	// Unauthenticated close touches nothing.
	require.NoError(t, session.Close())
	assert.Equal(t, 0, logouts)

	require.NoError(t, session.Login("admin", "secret"))
	require.NoError(t, session.Close())
	assert.Equal(t, 1, logouts)
	assert.Empty(t, session.credential)
}

func TestAccessDenied_On401Unauthenticated(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/snmpGet", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	session, _ := newTestSession(t, mux)

	_, err := session.SNMPGet("1.2.3")
	require.Error(t, err)
	var denied *AccessDeniedError
	assert.ErrorAs(t, err, &denied)
}
