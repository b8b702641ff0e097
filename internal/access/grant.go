// Package access is the single source of truth for set access control: the
// signed passcode grant token and the view/edit/admin decision rules that
// every controller consults.
package access

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// GrantCookiePrefix is shared by every per-set grant cookie, so a client's
// grants can be cleared in bulk by name prefix.
const GrantCookiePrefix = "set_pass_ok_"

// GrantCookieName returns the cookie that carries the grant for a set.
func GrantCookieName(setID string) string {
	return GrantCookiePrefix + setID
}

// Grant is the outcome of verifying a presented token. Expired is only
// meaningful when the signature checked out: an expired-but-authentic token
// is reported distinctly from a forged or malformed one, and nothing more
// specific is ever revealed.
type Grant struct {
	OK      bool
	Expired bool
}

// ConfigError reports a missing or unusable signing configuration.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return e.Msg }

// MintGrant builds the bearer token proving the holder supplied the correct
// passcode for setID. The payload is "setID.expiryMillis" (expiry empty when
// the passcode never expires), signed with HMAC-SHA256.
func MintGrant(secret, setID string, expiresAt *time.Time) (string, error) {
	if secret == "" {
		return "", &ConfigError{Msg: "grant signing secret is not configured"}
	}
	expField := ""
	if expiresAt != nil {
		expField = strconv.FormatInt(expiresAt.UnixMilli(), 10)
	}
	payload := setID + "." + expField
	return payload + "." + sign(secret, payload), nil
}

// VerifyGrant checks a presented token against the expected set. It never
// panics on malformed input and uses a constant-time signature comparison.
func VerifyGrant(secret, token, setID string) Grant {
	return verifyGrantAt(secret, token, setID, time.Now())
}

func verifyGrantAt(secret, token, setID string, now time.Time) Grant {
	if secret == "" || token == "" {
		return Grant{}
	}
	parts := strings.Split(token, ".")
	if len(parts) < 3 {
		return Grant{}
	}
	id, expField := parts[0], parts[1]
	sig := strings.Join(parts[2:], ".")
	if id != setID {
		return Grant{}
	}
	expected := sign(secret, id+"."+expField)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return Grant{}
	}
	if expField != "" {
		expMillis, err := strconv.ParseInt(expField, 10, 64)
		if err != nil {
			return Grant{}
		}
		if now.UnixMilli() > expMillis {
			return Grant{Expired: true}
		}
	}
	return Grant{OK: true}
}

func sign(secret, payload string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprint(mac, payload)
	return hex.EncodeToString(mac.Sum(nil))
}
