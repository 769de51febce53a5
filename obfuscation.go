package xps

import (
	"fmt"
	"strings"
)

// ObfuscatedFontExt is the extension of obfuscated font parts.
const ObfuscatedFontExt = ".odttf"

// IsObfuscated returns true if the part name has the obfuscated font extension, ignoring case.
func IsObfuscated(name string) bool {
	return len(ObfuscatedFontExt) <= len(name) && strings.EqualFold(name[len(name)-len(ObfuscatedFontExt):], ObfuscatedFontExt)
}

// ObfuscationKey derives the 16-byte key from the GUID in the last segment of the part name. Only hexadecimal digits are used, in order, until 32 are collected.
func ObfuscationKey(name string) ([16]byte, error) {
	var key [16]byte
	if i := strings.LastIndexByte(name, '/'); i != -1 {
		name = name[i+1:]
	}

	n := 0
	for i := 0; i < len(name) && n < 32; i++ {
		v, ok := unhex(name[i])
		if !ok {
			continue
		}
		if n%2 == 0 {
			key[n/2] = v << 4
		} else {
			key[n/2] |= v
		}
		n++
	}
	if n < 32 {
		return key, fmt.Errorf("%w: %d hex digits in %q", ErrMalformedObfuscationKey, n, name)
	}
	return key, nil
}

// Deobfuscate reverses the font obfuscation of the part with the given name by XOR-ing the first 32 bytes with the key in reverse order. The data is modified in place and left untouched on error. Applying it twice restores the data.
func Deobfuscate(name string, data []byte) error {
	key, err := ObfuscationKey(name)
	if err != nil {
		return err
	} else if len(data) < 32 {
		return fmt.Errorf("%w: font data of %d bytes is too short", ErrMalformedObfuscationKey, len(data))
	}
	for i := 0; i < 16; i++ {
		data[i] ^= key[15-i]
		data[i+16] ^= key[15-i]
	}
	return nil
}

func unhex(c byte) (byte, bool) {
	if '0' <= c && c <= '9' {
		return c - '0', true
	} else if 'a' <= c && c <= 'f' {
		return c - 'a' + 10, true
	} else if 'A' <= c && c <= 'F' {
		return c - 'A' + 10, true
	}
	return 0, false
}
