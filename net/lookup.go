// Copyright (c) 2016 Tin Project. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package net

import (
	"bufio"
	"errors"
	"fmt"
	stdnet "net"
	"os"
	"strings"
	"syscall"
	"time"

	"golang.org/x/net/dns/dnsmessage"

	"github.com/PlumpMath/tin/runtime"
)

// Name resolution runs on the dedicated getaddrinfo offload pool: the
// calling greenlet parks, a pool thread performs the blocking exchange, and
// Ready re-queues the caller with the result attached to the work item.

const (
	resolvConfPath = "/etc/resolv.conf"
	dnsTimeout     = 5 * time.Second
)

var defaultNameservers = []string{"127.0.0.1:53", "[::1]:53"}

type getAddrInfoWork struct {
	runtime.GletWork
	host  string
	addrs []IPAddress
	err   error
}

func (w *getAddrInfoWork) Run() {
	w.addrs, w.err = resolveHost(w.host)
	if w.err != nil {
		var errno syscall.Errno
		if errors.As(w.err, &errno) {
			w.SaveLastError(int(errno))
		}
	}
}

// LookupIP resolves host to its addresses. IP literals short-circuit; names
// go through a blocking DNS exchange on the resolver pool while the calling
// greenlet is parked.
func LookupIP(gp *runtime.G, host string) ([]IPAddress, error) {
	if addr, ok := ParseIPLiteral(host); ok {
		return []IPAddress{addr}, nil
	}
	w := &getAddrInfoWork{host: host}
	runtime.SubmitGetAddrInfoGletWork(gp, w)
	return w.addrs, w.err
}

func resolveHost(host string) ([]IPAddress, error) {
	servers := nameservers()
	var addrs []IPAddress
	var lastErr error
	for _, qtype := range []dnsmessage.Type{dnsmessage.TypeA, dnsmessage.TypeAAAA} {
		got, err := queryServers(servers, host, qtype)
		if err != nil {
			lastErr = err
			continue
		}
		addrs = append(addrs, got...)
	}
	if len(addrs) == 0 {
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, fmt.Errorf("lookup %s: no addresses", host)
	}
	return addrs, nil
}

func queryServers(servers []string, host string, qtype dnsmessage.Type) ([]IPAddress, error) {
	var lastErr error
	for _, server := range servers {
		addrs, err := exchange(server, host, qtype)
		if err != nil {
			lastErr = err
			continue
		}
		return addrs, nil
	}
	return nil, lastErr
}

// exchange performs one blocking UDP question/answer round trip.
func exchange(server, host string, qtype dnsmessage.Type) ([]IPAddress, error) {
	id := uint16(time.Now().UnixNano())
	msg, err := buildQuery(id, host, qtype)
	if err != nil {
		return nil, err
	}

	conn, err := stdnet.Dial("udp", server)
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	if err := conn.SetDeadline(time.Now().Add(dnsTimeout)); err != nil {
		return nil, err
	}
	if _, err := conn.Write(msg); err != nil {
		return nil, err
	}
	resp := make([]byte, 1232)
	n, err := conn.Read(resp)
	if err != nil {
		return nil, err
	}
	return parseAnswers(resp[:n], id, qtype)
}

func buildQuery(id uint16, host string, qtype dnsmessage.Type) ([]byte, error) {
	if !strings.HasSuffix(host, ".") {
		host += "."
	}
	name, err := dnsmessage.NewName(host)
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", host, err)
	}
	b := dnsmessage.NewBuilder(nil, dnsmessage.Header{
		ID:               id,
		RecursionDesired: true,
	})
	b.EnableCompression()
	if err := b.StartQuestions(); err != nil {
		return nil, err
	}
	if err := b.Question(dnsmessage.Question{
		Name:  name,
		Type:  qtype,
		Class: dnsmessage.ClassINET,
	}); err != nil {
		return nil, err
	}
	return b.Finish()
}

func parseAnswers(resp []byte, id uint16, qtype dnsmessage.Type) ([]IPAddress, error) {
	var p dnsmessage.Parser
	hdr, err := p.Start(resp)
	if err != nil {
		return nil, err
	}
	if hdr.ID != id {
		return nil, errors.New("dns: response ID mismatch")
	}
	if hdr.RCode != dnsmessage.RCodeSuccess {
		return nil, fmt.Errorf("dns: server failure: %v", hdr.RCode)
	}
	if err := p.SkipAllQuestions(); err != nil {
		return nil, err
	}
	var addrs []IPAddress
	for {
		h, err := p.AnswerHeader()
		if err == dnsmessage.ErrSectionDone {
			break
		}
		if err != nil {
			return nil, err
		}
		switch h.Type {
		case dnsmessage.TypeA:
			r, err := p.AResource()
			if err != nil {
				return nil, err
			}
			if qtype == dnsmessage.TypeA {
				addr := make(IPAddress, IPv4AddressSize)
				copy(addr, r.A[:])
				addrs = append(addrs, addr)
			}
		case dnsmessage.TypeAAAA:
			r, err := p.AAAAResource()
			if err != nil {
				return nil, err
			}
			if qtype == dnsmessage.TypeAAAA {
				addr := make(IPAddress, IPv6AddressSize)
				copy(addr, r.AAAA[:])
				addrs = append(addrs, addr)
			}
		default:
			if err := p.SkipAnswer(); err != nil {
				return nil, err
			}
		}
	}
	return addrs, nil
}

// nameservers reads the system resolver list, falling back to localhost.
func nameservers() []string {
	f, err := os.Open(resolvConfPath)
	if err != nil {
		return defaultNameservers
	}
	defer f.Close()
	var servers []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) >= 2 && fields[0] == "nameserver" {
			if addr, ok := ParseIPLiteral(fields[1]); ok {
				servers = append(servers, IPAddressToStringWithPort(addr, 53))
			}
		}
	}
	if len(servers) == 0 {
		return defaultNameservers
	}
	return servers
}
