// Package session moves session tokens in and out of HTTP cookies. It never
// looks inside the token.
package session

import (
	"net/http"
	"time"
)

// Options configures a Carrier.
type Options struct {
	// Name of the cookie.
	Name string
	// TTL is used as the cookie Max-Age; it should match the token lifetime.
	TTL time.Duration
	// Production enables Secure and SameSite=Strict. Development uses
	// SameSite=Lax over plain HTTP.
	Production bool
}

// Carrier writes, reads and clears the session cookie.
type Carrier struct {
	opts Options
	now  func() time.Time
}

func NewCarrier(opts Options) *Carrier {
	return &Carrier{opts: opts, now: time.Now}
}

// Name returns the cookie name.
func (c *Carrier) Name() string { return c.opts.Name }

// Attach sets the session cookie carrying token on the response.
func (c *Carrier) Attach(w http.ResponseWriter, token string) {
	cookie := c.base()
	cookie.Value = token
	cookie.MaxAge = maxAge(c.opts.TTL)
	cookie.Expires = c.now().Add(c.opts.TTL)
	http.SetCookie(w, cookie)
}

// Extract returns the session token from the request. A missing or empty
// cookie reports false; what that means is up to the caller.
func (c *Carrier) Extract(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(c.opts.Name)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// Clear overwrites the session cookie with an expired, empty one so the
// client drops it. Safe to call when no session exists.
func (c *Carrier) Clear(w http.ResponseWriter) {
	cookie := c.base()
	cookie.MaxAge = -1
	cookie.Expires = time.Unix(0, 0)
	http.SetCookie(w, cookie)
}

// maxAge rounds ttl up to whole seconds; a Max-Age of 0 would turn the
// cookie into a browser-session cookie.
func maxAge(ttl time.Duration) int {
	secs := int((ttl + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return secs
}

func (c *Carrier) base() *http.Cookie {
	cookie := &http.Cookie{
		Name:     c.opts.Name,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if c.opts.Production {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteStrictMode
	}
	return cookie
}
