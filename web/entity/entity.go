// Package entity defines the request forms and response envelopes used by the
// web layer of the bookshelf server.
package entity

import (
	"crypto/tls"
	"math"
	"net"
	"strings"

	"github.com/raimis707/bookshelf/util/common"
)

// Msg represents a standard API response message with success status, message text, and optional data object.
type Msg struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
	Field   string `json:"field,omitempty"` // Form field the message refers to
	Obj     any    `json:"obj"`
}

// AllSetting contains the runtime settings stored in the database.
type AllSetting struct {
	WebListen       string `json:"webListen" form:"webListen"`             // Web server listen IP address
	WebDomain       string `json:"webDomain" form:"webDomain"`             // Web server domain for domain validation
	WebPort         int    `json:"webPort" form:"webPort"`                 // Web server port number
	WebCertFile     string `json:"webCertFile" form:"webCertFile"`         // Path to SSL certificate file for web server
	WebKeyFile      string `json:"webKeyFile" form:"webKeyFile"`           // Path to SSL private key file for web server
	WebBasePath     string `json:"webBasePath" form:"webBasePath"`         // Base path for web URLs
	SessionMaxAge   int    `json:"sessionMaxAge" form:"sessionMaxAge"`     // Session maximum age in minutes
	OpenBookCatalog bool   `json:"openBookCatalog" form:"openBookCatalog"` // Let anyone add books, not only administrators
}

// CheckValid validates the settings and normalizes the base path.
func (s *AllSetting) CheckValid() error {
	if s.WebListen != "" {
		ip := net.ParseIP(s.WebListen)
		if ip == nil {
			return common.NewError("web listen is not valid ip:", s.WebListen)
		}
	}

	if s.WebPort <= 0 || s.WebPort > math.MaxUint16 {
		return common.NewError("web port is not a valid port:", s.WebPort)
	}

	if s.WebCertFile != "" || s.WebKeyFile != "" {
		_, err := tls.LoadX509KeyPair(s.WebCertFile, s.WebKeyFile)
		if err != nil {
			return common.NewErrorf("cert file <%v> or key file <%v> invalid: %v", s.WebCertFile, s.WebKeyFile, err)
		}
	}

	if s.SessionMaxAge <= 0 {
		return common.NewError("session max age must be positive:", s.SessionMaxAge)
	}

	if !strings.HasPrefix(s.WebBasePath, "/") {
		s.WebBasePath = "/" + s.WebBasePath
	}
	if !strings.HasSuffix(s.WebBasePath, "/") {
		s.WebBasePath += "/"
	}
	return nil
}
