// Copyright (c) 2016 Tin Project. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package net

import (
	"bytes"
	stdnet "net"
	"strconv"
)

const (
	// IPv4AddressSize is the number of bytes in an IPv4 address.
	IPv4AddressSize = 4
	// IPv6AddressSize is the number of bytes in an IPv6 address.
	IPv6AddressSize = 16
)

// The prefix for IPv4 mapped IPv6 addresses.
// https://tools.ietf.org/html/rfc4291#section-2.5.5.2
var ipv4MappedPrefix = []byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0xff, 0xff}

// An IPAddress is an IPv4 (4-byte) or IPv6 (16-byte) address. The zero
// value is an empty, invalid address.
type IPAddress []byte

// IPv4Address returns the IPv4 address a.b.c.d.
func IPv4Address(a, b, c, d byte) IPAddress {
	return IPAddress{a, b, c, d}
}

// IPv4Localhost returns 127.0.0.1.
func IPv4Localhost() IPAddress {
	return IPAddress{127, 0, 0, 1}
}

// IPv6Localhost returns ::1.
func IPv6Localhost() IPAddress {
	addr := make(IPAddress, IPv6AddressSize)
	addr[15] = 1
	return addr
}

// AllZeros returns an address of n zero bytes.
func AllZeros(n int) IPAddress {
	return make(IPAddress, n)
}

// IPv4AllZeros returns 0.0.0.0.
func IPv4AllZeros() IPAddress { return AllZeros(IPv4AddressSize) }

// IPv6AllZeros returns ::.
func IPv6AllZeros() IPAddress { return AllZeros(IPv6AddressSize) }

// ParseIPLiteral parses an IPv4 or IPv6 literal. A literal containing a
// colon is taken to be IPv6.
func ParseIPLiteral(s string) (IPAddress, bool) {
	ip := stdnet.ParseIP(s)
	if ip == nil {
		return nil, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			return IPAddress(ip.To16()), true
		}
	}
	ip4 := ip.To4()
	if ip4 == nil {
		return nil, false
	}
	return IPAddress(ip4), true
}

// ParseURLHostnameToAddress parses a URL-style hostname: IPv6 literals are
// surrounded by square brackets, IPv4 literals are bare.
func ParseURLHostnameToAddress(hostname string) (IPAddress, bool) {
	if len(hostname) >= 2 && hostname[0] == '[' && hostname[len(hostname)-1] == ']' {
		addr, ok := ParseIPLiteral(hostname[1 : len(hostname)-1])
		if !ok || !addr.IsIPv6() {
			return nil, false
		}
		return addr, true
	}
	addr, ok := ParseIPLiteral(hostname)
	if !ok || !addr.IsIPv4() {
		return nil, false
	}
	return addr, true
}

// IsIPv4 reports whether the address is 4 bytes long.
func (a IPAddress) IsIPv4() bool { return len(a) == IPv4AddressSize }

// IsIPv6 reports whether the address is 16 bytes long.
func (a IPAddress) IsIPv6() bool { return len(a) == IPv6AddressSize }

// IsValid reports whether the address is IPv4 or IPv6.
func (a IPAddress) IsValid() bool { return a.IsIPv4() || a.IsIPv6() }

// IsZero reports whether the address is all zero bytes (and not empty).
func (a IPAddress) IsZero() bool {
	for _, b := range a {
		if b != 0 {
			return false
		}
	}
	return len(a) != 0
}

// IsIPv4MappedIPv6 reports whether the address is an IPv4-mapped IPv6
// address per RFC 4291 section 2.5.5.2 (::ffff:a.b.c.d).
func (a IPAddress) IsIPv4MappedIPv6() bool {
	return a.IsIPv6() && IPAddressStartsWith(a, ipv4MappedPrefix)
}

// Equal reports whether a and b are byte-for-byte identical.
func (a IPAddress) Equal(b IPAddress) bool {
	return bytes.Equal(a, b)
}

// Less orders addresses: IPv4 sorts before IPv6, then bytewise.
func (a IPAddress) Less(b IPAddress) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return bytes.Compare(a, b) < 0
}

// String formats the address as an IP literal, or "" if invalid.
func (a IPAddress) String() string {
	if !a.IsValid() {
		return ""
	}
	return stdnet.IP(a).String()
}

// IsReserved reports whether the address belongs to a range that is not
// globally routable.
//
// IPv4 operates on a closed list of reserved ranges; some are consolidated.
// Sources:
// www.iana.org/assignments/ipv4-address-space/ipv4-address-space.xhtml
// www.iana.org/assignments/iana-ipv4-special-registry/iana-ipv4-special-registry.xhtml
//
// IPv6 is reserved by exclusion: everything outside the global unicast and
// multicast ranges. Source:
// www.iana.org/assignments/ipv6-address-space/ipv6-address-space.xhtml
func (a IPAddress) IsReserved() bool {
	if a.IsIPv4() {
		return isReservedIPv4(a)
	}
	if a.IsIPv6() {
		return isReservedIPv6(a)
	}
	return false
}

type reservedIPv4Range struct {
	address            [4]byte
	prefixLengthInBits int
}

var reservedIPv4Ranges = []reservedIPv4Range{
	{[4]byte{0, 0, 0, 0}, 8},     {[4]byte{10, 0, 0, 0}, 8},      {[4]byte{100, 64, 0, 0}, 10},
	{[4]byte{127, 0, 0, 0}, 8},   {[4]byte{169, 254, 0, 0}, 16},  {[4]byte{172, 16, 0, 0}, 12},
	{[4]byte{192, 0, 2, 0}, 24},  {[4]byte{192, 88, 99, 0}, 24},  {[4]byte{192, 168, 0, 0}, 16},
	{[4]byte{198, 18, 0, 0}, 15}, {[4]byte{198, 51, 100, 0}, 24}, {[4]byte{203, 0, 113, 0}, 24},
	{[4]byte{224, 0, 0, 0}, 3},
}

func isReservedIPv4(a IPAddress) bool {
	for _, r := range reservedIPv4Ranges {
		if prefixCheck(a, r.address[:], r.prefixLengthInBits) {
			return true
		}
	}
	return false
}

type publicIPv6Range struct {
	addressPrefix      [2]byte
	prefixLengthInBits int
}

var publicIPv6Ranges = []publicIPv6Range{
	// 2000::/3  -- Global Unicast
	{[2]byte{0x20, 0}, 3},
	// ff00::/8  -- Multicast
	{[2]byte{0xff, 0}, 8},
}

func isReservedIPv6(a IPAddress) bool {
	for _, r := range publicIPv6Ranges {
		if prefixCheck(a, r.addressPrefix[:], r.prefixLengthInBits) {
			return false
		}
	}
	return true
}

// prefixCheck assumes both address and prefix are at least
// prefixLengthInBits long.
func prefixCheck(address, prefix []byte, prefixLengthInBits int) bool {
	// Compare all the bytes that fall entirely within the prefix.
	entireBytes := prefixLengthInBits / 8
	for i := 0; i < entireBytes; i++ {
		if address[i] != prefix[i] {
			return false
		}
	}

	// In case the prefix was not a multiple of 8, there will be one byte
	// which is only partially masked.
	if remaining := prefixLengthInBits % 8; remaining != 0 {
		mask := byte(0xff) << (8 - remaining)
		if address[entireBytes]&mask != prefix[entireBytes]&mask {
			return false
		}
	}
	return true
}

// IPAddressStartsWith reports whether a begins with the given bytes.
func IPAddressStartsWith(a IPAddress, prefix []byte) bool {
	if len(a) < len(prefix) {
		return false
	}
	return bytes.Equal(a[:len(prefix)], prefix)
}

// ConvertIPv4ToIPv4MappedIPv6 maps an IPv4 address into the IPv6 space:
// 80 bits of zeros, 16 bits of ones, then the 32-bit IPv4 address.
func ConvertIPv4ToIPv4MappedIPv6(a IPAddress) IPAddress {
	if !a.IsIPv4() {
		return nil
	}
	out := make(IPAddress, 0, IPv6AddressSize)
	out = append(out, ipv4MappedPrefix...)
	out = append(out, a...)
	return out
}

// ConvertIPv4MappedIPv6ToIPv4 extracts the IPv4 address out of an
// IPv4-mapped IPv6 address.
func ConvertIPv4MappedIPv6ToIPv4(a IPAddress) IPAddress {
	if !a.IsIPv4MappedIPv6() {
		return nil
	}
	out := make(IPAddress, IPv4AddressSize)
	copy(out, a[len(ipv4MappedPrefix):])
	return out
}

// IPAddressMatchesPrefix reports whether the first prefixLengthInBits of
// address match prefix. On an IPv4/IPv6 mismatch the IPv4 side is converted
// to its IPv4-mapped form first; a v4 prefix length is widened by 96 bits.
func IPAddressMatchesPrefix(address, prefix IPAddress, prefixLengthInBits int) bool {
	if !address.IsValid() || !prefix.IsValid() {
		return false
	}
	if prefixLengthInBits > len(prefix)*8 {
		return false
	}
	if len(address) != len(prefix) {
		if address.IsIPv4() {
			return IPAddressMatchesPrefix(ConvertIPv4ToIPv4MappedIPv6(address),
				prefix, prefixLengthInBits)
		}
		return IPAddressMatchesPrefix(address,
			ConvertIPv4ToIPv4MappedIPv6(prefix), 96+prefixLengthInBits)
	}
	return prefixCheck(address, prefix, prefixLengthInBits)
}

// IPAddressToStringWithPort formats host:port, bracketing IPv6 literals.
func IPAddressToStringWithPort(a IPAddress, port uint16) string {
	s := a.String()
	if s == "" {
		return s
	}
	if a.IsIPv6() {
		return "[" + s + "]:" + strconv.Itoa(int(port))
	}
	return s + ":" + strconv.Itoa(int(port))
}

// IPAddressToPackedString returns the raw address bytes as a string.
func IPAddressToPackedString(a IPAddress) string {
	return string(a)
}

// CommonPrefixLength returns the number of leading bits a1 and a2 share.
// The addresses must be the same size.
func CommonPrefixLength(a1, a2 IPAddress) int {
	for i := 0; i < len(a1); i++ {
		diff := a1[i] ^ a2[i]
		if diff == 0 {
			continue
		}
		for j := 0; j < 8; j++ {
			if diff&0x80 != 0 {
				return i*8 + j
			}
			diff <<= 1
		}
	}
	return len(a1) * 8
}

// MaskPrefixLength returns the length of the leading run of ones in mask.
func MaskPrefixLength(mask IPAddress) int {
	allOnes := make(IPAddress, len(mask))
	for i := range allOnes {
		allOnes[i] = 0xff
	}
	return CommonPrefixLength(mask, allOnes)
}
