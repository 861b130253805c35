// Package idgen provides [vfstree.IDGenerator] implementations and a registry
// to select them by name from configuration.
package idgen

import (
	"encoding/base32"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/brettbedarf/vfstree"
	"github.com/google/uuid"
)

// lowercase, unpadded base32 keeps short ids safe for paths and urls
var shortEncoding = base32.NewEncoding("abcdefghijklmnopqrstuvwxyz234567").WithPadding(base32.NoPadding)

// Short generates 26 character identifiers from the 128 random bits of a v4 UUID
type Short struct{}

func (Short) NewID() string {
	id := uuid.New()
	return shortEncoding.EncodeToString(id[:])
}

// UUID generates canonical v4 UUID strings
type UUID struct{}

func (UUID) NewID() string {
	return uuid.NewString()
}

// Sequence generates deterministic "<prefix>-<n>" identifiers starting at 1.
// Useful for tests and reproducible seeds; NOT unique across processes.
type Sequence struct {
	prefix string
	last   atomic.Uint64
}

func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: strings.TrimSuffix(prefix, "-")}
}

func (s *Sequence) NewID() string {
	n := s.last.Add(1)
	if s.prefix == "" {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s-%d", s.prefix, n)
}

// Observe moves the sequence past id if id is one of its own ("<prefix>-<n>").
// Call it for every ID of a tree loaded from elsewhere before adding to it.
func (s *Sequence) Observe(id string) {
	num := id
	if s.prefix != "" {
		var ok bool
		if num, ok = strings.CutPrefix(id, s.prefix+"-"); !ok {
			return
		}
	}
	n, err := strconv.ParseUint(num, 10, 64)
	if err != nil {
		return
	}
	for {
		last := s.last.Load()
		if n <= last || s.last.CompareAndSwap(last, n) {
			return
		}
	}
}

var (
	_ vfstree.IDGenerator = Short{}
	_ vfstree.IDGenerator = UUID{}
	_ vfstree.IDGenerator = (*Sequence)(nil)
)
