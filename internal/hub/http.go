package hub

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cablekit/hubctl/internal/snmp"
	"github.com/sirupsen/logrus"
)

// httpSession talks to the hub's web interface, which proxies SNMP over
// HTTP endpoints (snmpGet, snmpSet, walk) and authenticates with a
// credential cookie obtained from the login endpoint.
type httpSession struct {
	baseURL string
	host    string
	client  *http.Client
	log     *logrus.Entry

	// nonce query parameters, fixed for the lifetime of the session
	nonce string

	credential string
	username   string
	password   string
	modelName  string
	family     string

	pendingApply bool
}

func openHTTP(opts Options) (Session, error) {
	s := &httpSession{
		baseURL:  "http://" + opts.Host,
		host:     opts.Host,
		client:   &http.Client{Timeout: opts.Timeout},
		log:      logrus.WithField("hub", opts.Host),
		username: opts.Username,
		password: opts.Password,
		nonce: fmt.Sprintf("_n=%05d&_=%d",
			10000+rand.Intn(90000), time.Now().UnixMilli()),
	}
	return s, nil
}

// do performs a GET against the hub and works around two firmware quirks:
// requests can randomly fail with 401 even when authenticated (fixed by
// logging in again) and with 500 under load (fixed by backing off).
func (s *httpSession) do(pathAndQuery string, retry401, retry500 int) ([]byte, error) {
	sleep := time.Second
	for {
		req, err := http.NewRequest(http.MethodGet, s.baseURL+"/"+pathAndQuery, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		if s.credential != "" {
			req.AddCookie(&http.Cookie{Name: "credential", Value: s.credential})
		}

		resp, err := s.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("request to hub failed: %w", err)
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read hub response: %w", err)
		}

		if resp.StatusCode == http.StatusUnauthorized {
			if retry401 > 0 && s.credential != "" {
				retry401--
				s.log.Warnf("got HTTP 401, logging in again and retrying")
				if err := s.Login(s.username, s.password); err != nil {
					return nil, err
				}
				continue
			}
			return nil, &AccessDeniedError{Path: pathAndQuery}
		}
		if resp.StatusCode == http.StatusInternalServerError && retry500 > 0 {
			retry500--
			s.log.Warnf("got HTTP 500, retrying after %s", sleep)
			time.Sleep(sleep)
			sleep *= 2
			continue
		}
		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("hub request %q failed with status %d: %s",
				pathAndQuery, resp.StatusCode, strings.TrimSpace(string(body)))
		}
		return body, nil
	}
}

// Login obtains the credential cookie. If username is empty the hub is asked
// for its admin user name first.
func (s *httpSession) Login(username, password string) error {
	if username == "" {
		name, err := s.SNMPGet("1.3.6.1.4.1.4115.1.20.1.1.5.16.1.2.1")
		if err != nil {
			return fmt.Errorf("failed to discover admin username: %w", err)
		}
		username = name
	}

	arg := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	body, err := s.do("login?arg="+url.QueryEscape(arg)+"&"+s.nonce, 0, 3)
	if err != nil {
		return err
	}
	if len(body) == 0 {
		// The firmware answers 200 with an empty body on bad credentials.
		return &LoginError{Reason: "no credential in response, most likely bad username/password"}
	}

	decoded, err := base64.StdEncoding.DecodeString(string(body))
	if err != nil {
		return &LoginError{Reason: "credential is not valid base64: " + err.Error()}
	}
	var attrs struct {
		ModelName string `json:"modelname"`
		Family    string `json:"family"`
		GwWan     string `json:"gwWan"`
		ConType   string `json:"conType"`
		Muti      string `json:"muti"`
	}
	if err := json.Unmarshal(decoded, &attrs); err != nil {
		return &LoginError{Reason: "cannot decode login response: " + err.Error()}
	}

	// Concurrent logins make the firmware fail random requests with 401,
	// so at least tell the operator who else is on.
	switch {
	case attrs.GwWan == "f" && attrs.ConType == "LAN" && attrs.Muti == "GW_WAN":
		s.log.Warn("a remote user is already logged in: some requests may fail with 401")
	case attrs.GwWan == "f" && attrs.ConType == "LAN" && attrs.Muti == "LAN":
		s.log.Warn("another local user is already logged in: some requests may fail with 401")
	case attrs.GwWan == "t" && attrs.Muti == "LAN":
		s.log.Warn("a local user is already logged in: some requests may fail with 401")
	case attrs.GwWan == "t" && attrs.Muti == "GW_WAN":
		s.log.Warn("another remote user is already logged in: some requests may fail with 401")
	}

	s.credential = string(body)
	s.username = username
	s.password = password
	s.modelName = attrs.ModelName
	s.family = attrs.Family
	s.log.WithFields(logrus.Fields{
		"model":  attrs.ModelName,
		"family": attrs.Family,
	}).Debug("logged in")
	return nil
}

// Close logs out when authenticated. The credential is dropped even when the
// logout request fails, so a session never survives Close.
func (s *httpSession) Close() error {
	if s.credential == "" {
		return nil
	}
	_, err := s.do("logout?"+s.nonce, 0, 0)
	s.credential = ""
	s.username = ""
	s.password = ""
	if err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	return nil
}

func (s *httpSession) SNMPGet(oid string) (string, error) {
	values, err := s.SNMPGets([]string{oid})
	if err != nil {
		return "", err
	}
	value, ok := values[oid]
	if !ok {
		return "", fmt.Errorf("hub returned no value for OID %s", oid)
	}
	return value, nil
}

func (s *httpSession) SNMPGets(oids []string) (map[string]string, error) {
	body, err := s.do("snmpGet?oids="+strings.Join(oids, ";")+";&"+s.nonce, 5, 3)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("cannot decode snmpGet response %q: %w", string(body), err)
	}
	return stringifyValues(raw), nil
}

func (s *httpSession) SNMPSet(oid, value string, dt snmp.Type) error {
	if err := s.rawSet(oid, value, dt); err != nil {
		return err
	}
	s.pendingApply = true
	return nil
}

func (s *httpSession) rawSet(oid, value string, dt snmp.Type) error {
	oidValue := oid
	if value != "" {
		if dt == snmp.TypeString {
			// Dollar signs are meaningful to the firmware's hex encoding
			// and must be escaped in the query.
			value = strings.ReplaceAll(value, "$", "%24")
		}
		oidValue += "=" + value
	}
	oidValue += ";"
	if dt != snmp.TypeNone {
		oidValue += string(dt)
	}

	body, err := s.do("snmpSet?oid="+oidValue+"&"+s.nonce, 5, 3)
	if err != nil {
		return err
	}
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return fmt.Errorf("cannot decode snmpSet response %q: %w", string(body), err)
	}
	if _, ok := raw[oid]; !ok {
		return &SetRefusedError{OID: oid, Response: string(body)}
	}
	return nil
}

func (s *httpSession) SNMPWalk(oid string) (map[string]string, error) {
	body, err := s.do("walk?oids="+oid+";&"+s.nonce, 5, 3)
	if err != nil {
		return nil, err
	}

	// The firmware sometimes injects the literal line
	// "Error in OID formatting!" into otherwise valid JSON. Strip such
	// lines before decoding.
	lines := strings.Split(string(body), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line != "Error in OID formatting!" {
			kept = append(kept, line)
		}
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(strings.Join(kept, "\n")), &raw); err != nil {
		return nil, fmt.Errorf("cannot decode walk response: %w", err)
	}
	// Every walk ends with a bogus {"1": "Finish"} entry.
	if raw["1"] == "Finish" {
		delete(raw, "1")
	}
	return stringifyValues(raw), nil
}

func (s *httpSession) ApplySettings() error {
	if !s.pendingApply {
		return nil
	}
	if err := s.rawSet(applyOID, "1", snmp.TypeInt); err != nil {
		return err
	}
	s.pendingApply = false
	return nil
}

// stringifyValues flattens a decoded JSON object to string values. The hub
// reports everything as strings, but numbers slip through on some firmware
// versions.
func stringifyValues(raw map[string]any) map[string]string {
	out := make(map[string]string, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case string:
			out[key] = v
		case float64:
			out[key] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			if v {
				out[key] = "1"
			} else {
				out[key] = "2"
			}
		case nil:
			out[key] = ""
		default:
			out[key] = fmt.Sprintf("%v", v)
		}
	}
	return out
}
