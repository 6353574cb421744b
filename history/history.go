// Package history persists completed simulation runs to an append-only log.
//
// Records are JSON documents wrapped in a fixed binary frame so the file can
// be scanned front to back without an index:
//
//	[0-1]   magic (0x5CA7)
//	[2]     compression (0=none, 1=lz4, 2=snappy)
//	[3]     reserved
//	[4-7]   uncompressed payload size
//	[8-11]  stored payload size
//	[12-15] CRC32 (IEEE) of the uncompressed payload
//	[16+]   payload
package history

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"sync"
	"time"

	"github.com/golang/snappy"
	"github.com/pierrec/lz4/v4"

	"github.com/pranita383/virtual-memory-and-cache-optimizer/sim"
)

// Compression selects the per-record payload codec.
type Compression uint8

const (
	None Compression = iota
	LZ4
	Snappy
)

// ParseCompression maps a selector string to a codec.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "", "none":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "snappy":
		return Snappy, nil
	default:
		return None, fmt.Errorf("history: unknown compression %q", name)
	}
}

const (
	frameMagic      = 0x5CA7
	frameHeaderSize = 16

	// maxFramePayload bounds the stored and raw sizes of a single record.
	// Records are small JSON documents; a header asking for more than this
	// is corruption, and rejecting it up front keeps a bad length field
	// from forcing a multi-gigabyte allocation before the checksum runs.
	maxFramePayload = 1 << 20
)

// ErrCorruptFrame is returned when a stored frame fails validation
// (bad magic, truncated payload, or checksum mismatch).
var ErrCorruptFrame = errors.New("history: corrupt frame")

// Record is one completed run as persisted to the log.
type Record struct {
	Timestamp   time.Time `json:"timestamp"`
	Policy      string    `json:"policy"`
	CacheSize   int       `json:"cache_size"`
	TraceLength int       `json:"trace_length"`
	Hits        int64     `json:"hits"`
	Misses      int64     `json:"misses"`
	HitRatio    float64   `json:"hit_ratio"`
}

// Options configures a Log. Zero values are safe: no compression,
// time.Now timestamps.
type Options struct {
	Compression Compression
	// Now overrides the timestamp source; useful for deterministic tests.
	// Nil => time.Now.
	Now func() time.Time
}

// Log appends run records to a file. Safe for concurrent use: appends are
// serialized under a mutex so frames never interleave.
type Log struct {
	mu  sync.Mutex
	f   *os.File
	opt Options
}

// Open opens (creating if needed) an append-only history log.
func Open(path string, opt Options) (*Log, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("history: open %s: %w", path, err)
	}
	return &Log{f: f, opt: opt}, nil
}

// Append records a completed run.
func (l *Log) Append(policyName string, cacheSize, traceLength int, res sim.Result) error {
	now := time.Now
	if l.opt.Now != nil {
		now = l.opt.Now
	}
	rec := Record{
		Timestamp:   now().UTC(),
		Policy:      policyName,
		CacheSize:   cacheSize,
		TraceLength: traceLength,
		Hits:        res.Hits,
		Misses:      res.Misses,
		HitRatio:    res.HitRatio,
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("history: marshal: %w", err)
	}
	frame, err := encodeFrame(payload, l.opt.Compression)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.f.Write(frame); err != nil {
		return fmt.Errorf("history: append: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.f.Close()
}

// encodeFrame compresses the payload and prefixes the frame header.
// An incompressible lz4 payload falls back to a raw frame.
func encodeFrame(payload []byte, c Compression) ([]byte, error) {
	stored := payload
	switch c {
	case None:
	case LZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(payload)))
		n, err := lz4.CompressBlock(payload, buf, nil)
		if err != nil {
			return nil, fmt.Errorf("history: lz4: %w", err)
		}
		if n == 0 {
			c = None // not compressible
		} else {
			stored = buf[:n]
		}
	case Snappy:
		stored = snappy.Encode(nil, payload)
	default:
		return nil, fmt.Errorf("history: unsupported compression %d", c)
	}

	frame := make([]byte, frameHeaderSize+len(stored))
	binary.LittleEndian.PutUint16(frame[0:2], frameMagic)
	frame[2] = uint8(c)
	binary.LittleEndian.PutUint32(frame[4:8], uint32(len(payload)))
	binary.LittleEndian.PutUint32(frame[8:12], uint32(len(stored)))
	binary.LittleEndian.PutUint32(frame[12:16], crc32.ChecksumIEEE(payload))
	copy(frame[frameHeaderSize:], stored)
	return frame, nil
}

// ReadAll scans a history log and returns every record in append order.
func ReadAll(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("history: open %s: %w", path, err)
	}
	defer f.Close()

	var recs []Record
	header := make([]byte, frameHeaderSize)
	for {
		if _, err := io.ReadFull(f, header); err != nil {
			if err == io.EOF {
				return recs, nil
			}
			return nil, fmt.Errorf("%w: truncated header", ErrCorruptFrame)
		}
		if binary.LittleEndian.Uint16(header[0:2]) != frameMagic {
			return nil, fmt.Errorf("%w: bad magic", ErrCorruptFrame)
		}
		c := Compression(header[2])
		rawLen := binary.LittleEndian.Uint32(header[4:8])
		storedLen := binary.LittleEndian.Uint32(header[8:12])
		sum := binary.LittleEndian.Uint32(header[12:16])
		if rawLen > maxFramePayload || storedLen > maxFramePayload {
			return nil, fmt.Errorf("%w: payload size out of range", ErrCorruptFrame)
		}

		stored := make([]byte, storedLen)
		if _, err := io.ReadFull(f, stored); err != nil {
			return nil, fmt.Errorf("%w: truncated payload", ErrCorruptFrame)
		}

		payload, err := decodePayload(stored, c, rawLen)
		if err != nil {
			return nil, err
		}
		if crc32.ChecksumIEEE(payload) != sum {
			return nil, fmt.Errorf("%w: checksum mismatch", ErrCorruptFrame)
		}

		var rec Record
		if err := json.Unmarshal(payload, &rec); err != nil {
			return nil, fmt.Errorf("history: unmarshal: %w", err)
		}
		recs = append(recs, rec)
	}
}

func decodePayload(stored []byte, c Compression, rawLen uint32) ([]byte, error) {
	switch c {
	case None:
		return stored, nil
	case LZ4:
		out := make([]byte, rawLen)
		n, err := lz4.UncompressBlock(stored, out)
		if err != nil {
			return nil, fmt.Errorf("history: lz4: %w", err)
		}
		if uint32(n) != rawLen {
			return nil, fmt.Errorf("%w: lz4 size mismatch", ErrCorruptFrame)
		}
		return out, nil
	case Snappy:
		out, err := snappy.Decode(nil, stored)
		if err != nil {
			return nil, fmt.Errorf("history: snappy: %w", err)
		}
		if uint32(len(out)) != rawLen {
			return nil, fmt.Errorf("%w: snappy size mismatch", ErrCorruptFrame)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("history: unsupported compression %d", c)
	}
}
