package network

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/smallnest/agenttools/tool"
)

const (
	defaultDialTimeout = 5 * time.Second
	maxDialTimeout     = 30 * time.Second
	defaultPingCount   = 3
	maxPingCount       = 20
)

// LookupResult holds DNS records of one type for one name.
type LookupResult struct {
	Host    string   `json:"host"`
	Type    string   `json:"type"`
	Found   bool     `json:"found"`
	Records []string `json:"records,omitempty"`
}

// PortResult is the outcome of one TCP dial.
type PortResult struct {
	Host      string `json:"host"`
	Port      int    `json:"port"`
	Open      bool   `json:"open"`
	ElapsedMS int64  `json:"elapsed_ms"`
	Reason    string `json:"reason,omitempty"`
}

// URLParts is a URL broken into its components.
type URLParts struct {
	URL      string              `json:"url"`
	Scheme   string              `json:"scheme"`
	Host     string              `json:"host"`
	Port     int                 `json:"port,omitempty"`
	Path     string              `json:"path"`
	Query    map[string][]string `json:"query,omitempty"`
	Fragment string              `json:"fragment,omitempty"`
	User     string              `json:"user,omitempty"`
}

// Interface describes one local network interface.
type Interface struct {
	Name      string   `json:"name"`
	MAC       string   `json:"mac,omitempty"`
	Up        bool     `json:"up"`
	Loopback  bool     `json:"loopback"`
	Addresses []string `json:"addresses,omitempty"`
}

// InterfacesResult lists the local network interfaces.
type InterfacesResult struct {
	Interfaces []Interface `json:"interfaces"`
	Count      int         `json:"count"`
}

// PingResult holds latency statistics for sequential HTTP requests
// against one URL.
type PingResult struct {
	URL        string  `json:"url"`
	Method     string  `json:"method"`
	Count      int     `json:"count"`
	Failures   int     `json:"failures"`
	MinMS      float64 `json:"min_ms"`
	AvgMS      float64 `json:"avg_ms"`
	MaxMS      float64 `json:"max_ms"`
	StddevMS   float64 `json:"stddev_ms"`
	StatusCode int     `json:"status_code,omitempty"`
}

// Lookup resolves DNS records of the given type (A, AAAA, CNAME, MX, NS,
// TXT) for host. A name that does not exist reports Found=false; resolver
// failures are errors.
func Lookup(ctx context.Context, host, recordType string) (*LookupResult, error) {
	host = strings.TrimSpace(host)
	if host == "" {
		return nil, tool.Invalidf("host", "must not be empty")
	}
	recordType = strings.ToUpper(strings.TrimSpace(recordType))
	if recordType == "" {
		recordType = "A"
	}

	resolver := net.DefaultResolver
	var (
		records []string
		err     error
	)
	switch recordType {
	case "A":
		records, err = lookupIP(ctx, resolver, "ip4", host)
	case "AAAA":
		records, err = lookupIP(ctx, resolver, "ip6", host)
	case "CNAME":
		var cname string
		cname, err = resolver.LookupCNAME(ctx, host)
		if err == nil && cname != "" {
			records = []string{cname}
		}
	case "MX":
		var mxs []*net.MX
		mxs, err = resolver.LookupMX(ctx, host)
		for _, mx := range mxs {
			records = append(records, fmt.Sprintf("%d %s", mx.Pref, mx.Host))
		}
	case "NS":
		var nss []*net.NS
		nss, err = resolver.LookupNS(ctx, host)
		for _, ns := range nss {
			records = append(records, ns.Host)
		}
	case "TXT":
		records, err = resolver.LookupTXT(ctx, host)
	default:
		return nil, tool.Invalidf("type", "unsupported record type %q", recordType)
	}

	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			return &LookupResult{Host: host, Type: recordType, Found: false}, nil
		}
		return nil, fmt.Errorf("lookup %s %s: %w", recordType, host, err)
	}
	sort.Strings(records)
	return &LookupResult{
		Host:    host,
		Type:    recordType,
		Found:   len(records) > 0,
		Records: records,
	}, nil
}

func lookupIP(ctx context.Context, r *net.Resolver, network, host string) ([]string, error) {
	ips, err := r.LookupIP(ctx, network, host)
	if err != nil {
		return nil, err
	}
	records := make([]string, 0, len(ips))
	for _, ip := range ips {
		records = append(records, ip.String())
	}
	return records, nil
}

// CheckPort dials one TCP host:port and reports whether it accepted the
// connection. A refused or timed-out dial is a closed port, not an error.
func CheckPort(ctx context.Context, host string, port int, timeout time.Duration) (*PortResult, error) {
	host = strings.TrimSpace(host)
	if host == "" {
		return nil, tool.Invalidf("host", "must not be empty")
	}
	if port < 1 || port > 65535 {
		return nil, tool.Invalidf("port", "must be between 1 and 65535, got %d", port)
	}
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}
	if timeout > maxDialTimeout {
		timeout = maxDialTimeout
	}

	dialer := net.Dialer{Timeout: timeout}
	addr := net.JoinHostPort(host, strconv.Itoa(port))

	start := time.Now()
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		return &PortResult{
			Host:      host,
			Port:      port,
			Open:      false,
			ElapsedMS: elapsed,
			Reason:    dialReason(err),
		}, nil
	}
	_ = conn.Close()
	return &PortResult{Host: host, Port: port, Open: true, ElapsedMS: elapsed}, nil
}

func dialReason(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case strings.Contains(err.Error(), "refused"):
		return "refused"
	default:
		var nerr net.Error
		if errors.As(err, &nerr) && nerr.Timeout() {
			return "timeout"
		}
		return err.Error()
	}
}

// ParseURL breaks a URL into its components.
func ParseURL(raw string) (*URLParts, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, tool.Invalidf("url", "must not be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, tool.Invalidf("url", "not a valid URL: %v", err)
	}
	if u.Scheme == "" {
		return nil, tool.Invalidf("url", "missing scheme")
	}

	parts := &URLParts{
		URL:      raw,
		Scheme:   u.Scheme,
		Host:     u.Hostname(),
		Path:     u.Path,
		Fragment: u.Fragment,
	}
	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, tool.Invalidf("url", "invalid port %q", p)
		}
		parts.Port = port
	}
	if u.User != nil {
		parts.User = u.User.Username()
	}
	if q := u.Query(); len(q) > 0 {
		parts.Query = q
	}
	return parts, nil
}

// Interfaces lists the local network interfaces with their MACs and
// unicast addresses.
func Interfaces() (*InterfacesResult, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("list interfaces: %w", err)
	}

	result := make([]Interface, 0, len(ifaces))
	for _, iface := range ifaces {
		entry := Interface{
			Name:     iface.Name,
			MAC:      iface.HardwareAddr.String(),
			Up:       iface.Flags&net.FlagUp != 0,
			Loopback: iface.Flags&net.FlagLoopback != 0,
		}
		addrs, err := iface.Addrs()
		if err == nil {
			for _, addr := range addrs {
				entry.Addresses = append(entry.Addresses, addr.String())
			}
		}
		result = append(result, entry)
	}
	return &InterfacesResult{Interfaces: result, Count: len(result)}, nil
}

// Ping issues count sequential HTTP requests against a URL and reports
// wall-clock latency statistics. method is HEAD (default) or GET.
func Ping(ctx context.Context, rawURL, method string, count int, timeout time.Duration) (*PingResult, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, tool.Invalidf("url", "must be an absolute http or https URL")
	}
	method = strings.ToUpper(strings.TrimSpace(method))
	switch method {
	case "":
		method = http.MethodHead
	case http.MethodHead, http.MethodGet:
	default:
		return nil, tool.Invalidf("method", "must be HEAD or GET, got %q", method)
	}
	if count <= 0 {
		count = defaultPingCount
	}
	if count > maxPingCount {
		return nil, tool.Invalidf("count", "must not exceed %d", maxPingCount)
	}
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}

	client := &http.Client{Timeout: timeout}
	var (
		samples    []float64
		failures   int
		lastStatus int
	)
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		start := time.Now()
		resp, err := client.Do(req)
		elapsed := float64(time.Since(start).Microseconds()) / 1000
		if err != nil {
			failures++
			continue
		}
		_ = resp.Body.Close()
		lastStatus = resp.StatusCode
		samples = append(samples, elapsed)
	}

	res := &PingResult{
		URL:        rawURL,
		Method:     method,
		Count:      count,
		Failures:   failures,
		StatusCode: lastStatus,
	}
	if len(samples) == 0 {
		return res, nil
	}

	min, max, sum := samples[0], samples[0], 0.0
	for _, s := range samples {
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
		sum += s
	}
	avg := sum / float64(len(samples))
	variance := 0.0
	for _, s := range samples {
		variance += (s - avg) * (s - avg)
	}
	variance /= float64(len(samples))

	res.MinMS = round2(min)
	res.AvgMS = round2(avg)
	res.MaxMS = round2(max)
	res.StddevMS = round2(math.Sqrt(variance))
	return res, nil
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
