package activeres

import (
	"context"
	"fmt"
	"net"
	"sort"
	"strings"
	"sync"
	"time"
)

// Record is one answer from an active lookup.
type Record struct {
	Type       string `json:"type"` // A, AAAA, CNAME, MX, NS, TXT
	Domain     string `json:"domain"`
	Value      string `json:"value"`
	Additional string `json:"additional,omitempty"`
}

// Lookuper is the subset of *net.Resolver used for active resolution.
type Lookuper interface {
	LookupIP(ctx context.Context, network, host string) ([]net.IP, error)
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupNS(ctx context.Context, name string) ([]*net.NS, error)
	LookupTXT(ctx context.Context, name string) ([]string, error)
	LookupCNAME(ctx context.Context, host string) (string, error)
}

// NewResolver returns a pure-Go resolver. With a nameserver ("8.8.8.8:53")
// every query goes to it over UDP; otherwise the system config is used.
func NewResolver(nameserver string, timeout time.Duration) *net.Resolver {
	if nameserver == "" {
		return &net.Resolver{PreferGo: true}
	}
	return &net.Resolver{
		PreferGo: true,
		Dial: func(ctx context.Context, network, address string) (net.Conn, error) {
			d := net.Dialer{Timeout: timeout}
			return d.DialContext(ctx, "udp", nameserver)
		},
	}
}

// Resolve queries the basic record types of domain in parallel. Failed
// lookups are skipped; an error is returned only when nothing resolved.
func Resolve(ctx context.Context, r Lookuper, domain string) ([]Record, error) {
	domain = strings.TrimSuffix(strings.TrimSpace(domain), ".")
	if domain == "" {
		return nil, fmt.Errorf("domain is required")
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		records []Record
		errs    []error
	)
	run := func(kind string, fn func() ([]Record, error)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rs, err := fn()
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", kind, err))
				return
			}
			records = append(records, rs...)
		}()
	}

	for _, v := range []struct{ kind, network string }{{"A", "ip4"}, {"AAAA", "ip6"}} {
		v := v
		run(v.kind, func() ([]Record, error) {
			ips, err := r.LookupIP(ctx, v.network, domain)
			var out []Record
			for _, ip := range ips {
				out = append(out, Record{Type: v.kind, Domain: domain, Value: ip.String()})
			}
			return out, err
		})
	}
	run("MX", func() ([]Record, error) {
		mxs, err := r.LookupMX(ctx, domain)
		var out []Record
		for _, mx := range mxs {
			out = append(out, Record{Type: "MX", Domain: domain, Value: mx.Host, Additional: fmt.Sprintf("priority: %d", mx.Pref)})
		}
		return out, err
	})
	run("NS", func() ([]Record, error) {
		nss, err := r.LookupNS(ctx, domain)
		var out []Record
		for _, ns := range nss {
			out = append(out, Record{Type: "NS", Domain: domain, Value: ns.Host})
		}
		return out, err
	})
	run("TXT", func() ([]Record, error) {
		txts, err := r.LookupTXT(ctx, domain)
		var out []Record
		for _, txt := range txts {
			out = append(out, Record{Type: "TXT", Domain: domain, Value: txt})
		}
		return out, err
	})
	run("CNAME", func() ([]Record, error) {
		cname, err := r.LookupCNAME(ctx, domain)
		if err != nil || cname == "" || cname == domain+"." {
			return nil, err
		}
		return []Record{{Type: "CNAME", Domain: domain, Value: cname}}, nil
	})
	wg.Wait()

	if len(records) == 0 && len(errs) > 0 {
		return nil, fmt.Errorf("resolve %s: %w", domain, errs[0])
	}
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Type != records[j].Type {
			return records[i].Type < records[j].Type
		}
		return records[i].Value < records[j].Value
	})
	return records, nil
}

// Hostnames and IPs split records into the two lists the dialog shows.
func Hostnames(records []Record) []string {
	var out []string
	for _, r := range records {
		switch r.Type {
		case "CNAME", "MX", "NS":
			out = append(out, r.Value)
		}
	}
	return out
}

func IPs(records []Record) []string {
	var out []string
	for _, r := range records {
		if r.Type == "A" || r.Type == "AAAA" {
			out = append(out, r.Value)
		}
	}
	return out
}
