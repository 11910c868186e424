package rvo

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint returns a hash of the exact bits of all coordinates of paths.
// Two runs produce the same fingerprint only if their paths are bit-identical.
func Fingerprint[V Vector[V]](paths ...[]V) uint64 {
	h := xxhash.New()
	var buf [8]byte
	for _, path := range paths {
		binary.LittleEndian.PutUint64(buf[:], uint64(len(path)))
		h.Write(buf[:])
		for _, p := range path {
			for _, x := range p.Coords() {
				binary.LittleEndian.PutUint64(buf[:], math.Float64bits(x))
				h.Write(buf[:])
			}
		}
	}
	return h.Sum64()
}
