package tlsh

import (
	"encoding/hex"
	"strings"
)

// Wire sizes for the digest codec. HashSize and ColoredHashSize are raw
// byte counts; the hex forms are twice that, plus two bytes for the "T1"
// version prefix on the versioned form.
const (
	HashSize           = 1 + 1 + 1 + 32 // checksum + lvalue + qRatios + codes
	ColoredHashSize    = 1 + HashSize
	HexHashSize        = HashSize * 2
	ColoredHexHashSize = ColoredHashSize * 2
	VersionedHexHashSize = 2 + HexHashSize
	version            = "T1"
)

// swapNibbles reverses the two hex nibbles of a byte. The digest codec
// stores checksum, length and q-ratio bytes nibble-swapped relative to
// their natural hex rendering, a quirk of the wire format this codec must
// reproduce byte for byte to interoperate with other TLSH implementations.
func swapNibbles(b byte) byte {
	return (b << 4) | (b >> 4)
}

// Raw serializes t into its fixed-size raw byte form: checksum, lvalue and
// q-ratios nibble-swapped, followed by the 32 code bytes in reverse order.
func (t TLSH) Raw() []byte {
	out := make([]byte, HashSize)
	out[0] = swapNibbles(t.Checksum)
	out[1] = swapNibbles(t.Lvalue)
	out[2] = swapNibbles(t.QRatios)
	for i := 0; i < 32; i++ {
		out[3+i] = t.Codes[31-i]
	}
	return out
}

// ParseRaw decodes the raw byte form produced by Raw.
func ParseRaw(b []byte) (TLSH, error) {
	if len(b) != HashSize {
		return TLSH{}, ErrInvalidLength
	}
	var t TLSH
	t.Checksum = swapNibbles(b[0])
	t.Lvalue = swapNibbles(b[1])
	t.QRatios = swapNibbles(b[2])
	for i := 0; i < 32; i++ {
		t.Codes[31-i] = b[3+i]
	}
	return t, nil
}

// Digest renders t as the unversioned hex digest: the raw bytes
// upper-case hex encoded, with no "T1" prefix.
func (t TLSH) Digest() string {
	return strings.ToUpper(hex.EncodeToString(t.Raw()))
}

// DigestVersioned renders t with the "T1" version prefix most TLSH
// consumers expect.
func (t TLSH) DigestVersioned() string {
	return version + t.Digest()
}

// ParseDigest parses either the bare or "T1"-prefixed hex digest form.
func ParseDigest(s string) (TLSH, error) {
	if len(s) >= 2 && strings.EqualFold(s[:2], version) {
		if len(s) != VersionedHexHashSize {
			return TLSH{}, ErrInvalidLength
		}
		s = s[2:]
	} else if len(s) >= 1 && (s[0] == 'T' || s[0] == 't') {
		return TLSH{}, ErrInvalidVersion
	} else if len(s) != HexHashSize {
		return TLSH{}, ErrInvalidLength
	}

	raw, err := hex.DecodeString(s)
	if err != nil {
		return TLSH{}, ErrInvalidHex
	}
	return ParseRaw(raw)
}

// MustParseDigest is like ParseDigest but panics on error; it exists for
// tests and startup-time literals where the digest is known to be valid.
func MustParseDigest(s string) TLSH {
	t, err := ParseDigest(s)
	if err != nil {
		panic(err)
	}
	return t
}

// MustParseRaw is like ParseRaw but panics on error.
func MustParseRaw(b []byte) TLSH {
	t, err := ParseRaw(b)
	if err != nil {
		panic(err)
	}
	return t
}

// Raw serializes a colored hash: one color byte followed by the
// underlying TLSH's raw form.
func (c ColoredTLSH) Raw() []byte {
	out := make([]byte, 0, ColoredHashSize)
	out = append(out, c.Color)
	out = append(out, c.TLSH.Raw()...)
	return out
}

// ParseColoredRaw decodes the raw byte form produced by ColoredTLSH.Raw.
func ParseColoredRaw(b []byte) (ColoredTLSH, error) {
	if len(b) != ColoredHashSize {
		return ColoredTLSH{}, ErrInvalidLength
	}
	inner, err := ParseRaw(b[1:])
	if err != nil {
		return ColoredTLSH{}, err
	}
	return ColoredTLSH{Color: b[0], TLSH: inner}, nil
}

// Digest renders a colored hash as upper-case hex, color byte first.
func (c ColoredTLSH) Digest() string {
	return strings.ToUpper(hex.EncodeToString(c.Raw()))
}

// DigestVersioned adds the "T1" prefix to Digest.
func (c ColoredTLSH) DigestVersioned() string {
	return version + c.Digest()
}

// ParseColoredDigest parses either the bare or "T1"-prefixed colored hex
// digest form.
func ParseColoredDigest(s string) (ColoredTLSH, error) {
	if len(s) >= 2 && strings.EqualFold(s[:2], version) {
		if len(s) != 2+ColoredHexHashSize {
			return ColoredTLSH{}, ErrInvalidLength
		}
		s = s[2:]
	} else if len(s) >= 1 && (s[0] == 'T' || s[0] == 't') {
		return ColoredTLSH{}, ErrInvalidVersion
	} else if len(s) != ColoredHexHashSize {
		return ColoredTLSH{}, ErrInvalidLength
	}

	raw, err := hex.DecodeString(s)
	if err != nil {
		return ColoredTLSH{}, ErrInvalidHex
	}
	return ParseColoredRaw(raw)
}
