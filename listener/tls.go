/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package listener

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"strings"
)

// TLSPair names one certificate/key on disk or carries them inline in
// PEM form; file paths win when both are set.
type TLSPair struct {
	CertFile string `mapstructure:"cert_file" yaml:"cert_file"`
	KeyFile  string `mapstructure:"key_file" yaml:"key_file"`

	CertPEM string `mapstructure:"cert_pem" yaml:"cert_pem"`
	KeyPEM  string `mapstructure:"key_pem" yaml:"key_pem"`
}

// load resolves the pair into a tls.Certificate.
func (p TLSPair) load() (tls.Certificate, error) {
	if p.CertFile != "" || p.KeyFile != "" {
		return tls.LoadX509KeyPair(p.CertFile, p.KeyFile)
	}
	return tls.X509KeyPair([]byte(p.CertPEM), []byte(p.KeyPEM))
}

// TLSConfig is the declarative TLS section of a listener's configuration:
// certificate pairs, optional client-certificate policy, and the
// protocol-version window, all expressed as strings a YAML/TOML/JSON file
// can carry.
type TLSConfig struct {
	// Certificates is the server's certificate chain(s); at least one
	// pair is required to enable TLS.
	Certificates []TLSPair `mapstructure:"certificates" yaml:"certificates"`

	// ClientAuth selects the client-certificate policy: one of "none",
	// "request", "require", "verify", "strict" (require and verify).
	// Empty means "none".
	ClientAuth string `mapstructure:"client_auth" yaml:"client_auth"`

	// ClientCAFiles are PEM bundles trusted to sign client certificates.
	ClientCAFiles []string `mapstructure:"client_ca_files" yaml:"client_ca_files"`

	// RootCAFiles are extra PEM bundles appended to the verification
	// roots.
	RootCAFiles []string `mapstructure:"root_ca_files" yaml:"root_ca_files"`

	// VersionMin and VersionMax bound the negotiated protocol version:
	// "1.0" through "1.3", empty meaning the crypto/tls default.
	VersionMin string `mapstructure:"version_min" yaml:"version_min"`
	VersionMax string `mapstructure:"version_max" yaml:"version_max"`
}

// parseTLSVersion maps a config string to a tls.VersionTLSxx constant,
// zero for an empty string.
func parseTLSVersion(s string) (uint16, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "tls") {
	case "":
		return 0, nil
	case "1.0", "1_0", "10":
		return tls.VersionTLS10, nil
	case "1.1", "1_1", "11":
		return tls.VersionTLS11, nil
	case "1.2", "1_2", "12":
		return tls.VersionTLS12, nil
	case "1.3", "1_3", "13":
		return tls.VersionTLS13, nil
	default:
		return 0, fmt.Errorf("listener: unknown tls version '%s'", s)
	}
}

// parseClientAuth maps a config string to a tls.ClientAuthType.
func parseClientAuth(s string) (tls.ClientAuthType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return tls.NoClientCert, nil
	case "request":
		return tls.RequestClientCert, nil
	case "require":
		return tls.RequireAnyClientCert, nil
	case "verify":
		return tls.VerifyClientCertIfGiven, nil
	case "strict":
		return tls.RequireAndVerifyClientCert, nil
	default:
		return tls.NoClientCert, fmt.Errorf("listener: unknown client auth mode '%s'", s)
	}
}

// loadPool reads each PEM bundle into one x509.CertPool; nil when no
// files are named.
func loadPool(files []string) (*x509.CertPool, error) {
	if len(files) == 0 {
		return nil, nil
	}

	pool := x509.NewCertPool()
	for _, f := range files {
		pem, err := os.ReadFile(f)
		if err != nil {
			return nil, err
		}
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("listener: no certificate parsed from '%s'", f)
		}
	}

	return pool, nil
}

// TLS materializes the declarative config into a *tls.Config ready for
// tls.NewListener. serverName is recorded for SNI-less clients; it may be
// empty.
func (c *TLSConfig) TLS(serverName string) (*tls.Config, error) {
	if len(c.Certificates) == 0 {
		return nil, fmt.Errorf("listener: tls enabled without certificates")
	}

	out := &tls.Config{
		ServerName: serverName,
	}

	for _, p := range c.Certificates {
		crt, err := p.load()
		if err != nil {
			return nil, err
		}
		out.Certificates = append(out.Certificates, crt)
	}

	var err error
	if out.MinVersion, err = parseTLSVersion(c.VersionMin); err != nil {
		return nil, err
	}
	if out.MaxVersion, err = parseTLSVersion(c.VersionMax); err != nil {
		return nil, err
	}
	if out.MinVersion != 0 && out.MaxVersion != 0 && out.MinVersion > out.MaxVersion {
		return nil, fmt.Errorf("listener: tls version window is empty")
	}

	if out.ClientAuth, err = parseClientAuth(c.ClientAuth); err != nil {
		return nil, err
	}
	if out.ClientCAs, err = loadPool(c.ClientCAFiles); err != nil {
		return nil, err
	}
	if out.RootCAs, err = loadPool(c.RootCAFiles); err != nil {
		return nil, err
	}

	return out, nil
}
