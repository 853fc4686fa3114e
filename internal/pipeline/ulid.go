package pipeline

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// idSource issues ULID-style job IDs: a 48-bit millisecond timestamp
// followed by 80 random bits, written as 26 Crockford Base32 characters.
// IDs from the same millisecond carry an increasing counter ahead of the
// random bits, so IDs sort in submission order.
type idSource struct {
	mu     sync.Mutex
	lastMs uint64
	seq    uint16
}

var jobIDs idSource

// NewJobID returns a new job ID.
func NewJobID() string {
	return jobIDs.next(time.Now())
}

func (s *idSource) next(now time.Time) string {
	ms := uint64(now.UnixMilli())

	s.mu.Lock()
	if ms == s.lastMs {
		s.seq++
	} else {
		s.lastMs, s.seq = ms, 0
	}
	seq := s.seq
	s.mu.Unlock()

	var id [16]byte
	binary.BigEndian.PutUint64(id[:8], ms<<16)
	binary.BigEndian.PutUint16(id[6:8], seq)
	rand.Read(id[8:])
	return encodeBase32(id)
}

// encodeBase32 writes the 128-bit value right-aligned in 130 bits, so the
// first character holds only the top three bits.
func encodeBase32(id [16]byte) string {
	hi := binary.BigEndian.Uint64(id[:8])
	lo := binary.BigEndian.Uint64(id[8:])
	var out [26]byte
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = crockford[lo&31]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}
	return string(out[:])
}
