package export

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/paymolabs/trustgraph"
	"github.com/paymolabs/trustgraph/blobstore"
	"github.com/paymolabs/trustgraph/internal/hash"
	"github.com/paymolabs/trustgraph/model"
)

// ErrBadSnapshot is returned when snapshot data cannot be decoded.
// Errors from ReadSnapshot satisfy errors.Is(err, ErrBadSnapshot).
var ErrBadSnapshot = errors.New("bad snapshot")

// Compression selects the snapshot body compression.
type Compression uint8

const (
	// CompressionNone stores the body uncompressed.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD compression (better ratio).
	CompressionZSTD Compression = 2
)

// Snapshot layout, little endian:
//
//	[magic "TGS1"][compression u8]
//	[uncompressedSize u32][storedSize u32][body]
//	[crc32c u32 over all preceding bytes]
//
// storedSize == 0 means the body is stored raw (compression did not help
// or CompressionNone); its length is then uncompressedSize.
var snapshotMagic = [4]byte{'T', 'G', 'S', '1'}

// SnapshotOptions configures snapshot writing.
type SnapshotOptions struct {
	Compression Compression
	Logger      *trustgraph.Logger
}

// WriteSnapshot encodes the network's relationships and stores them as a
// blob. The core keeps no persistence of its own; a snapshot is an
// explicit export of the edge set.
func WriteSnapshot(ctx context.Context, store blobstore.Store, name string, net *trustgraph.Network, optFns ...func(*SnapshotOptions)) error {
	opts := SnapshotOptions{Compression: CompressionZSTD}
	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}

	edges := net.Edges()

	data, err := encodeSnapshot(edges, opts.Compression)
	if err == nil {
		err = store.Put(ctx, name, data)
	}

	if opts.Logger != nil {
		opts.Logger.LogSnapshot(ctx, name, len(edges), err)
	}

	return err
}

// ReadSnapshot loads and decodes a snapshot blob into its edge pairs.
func ReadSnapshot(ctx context.Context, store blobstore.Store, name string) ([]model.Pair, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer blob.Close()

	data, err := blobstore.ReadAll(blob)
	if err != nil {
		return nil, err
	}

	return decodeSnapshot(data)
}

// RestoreSnapshot rebuilds a network from a snapshot. Only users with at
// least one relationship are present in a snapshot, so isolated users do
// not survive a round trip.
func RestoreSnapshot(ctx context.Context, store blobstore.Store, name string, netOpts ...trustgraph.Option) (*trustgraph.Network, error) {
	edges, err := ReadSnapshot(ctx, store, name)
	if err != nil {
		return nil, err
	}

	net := trustgraph.New(netOpts...)
	net.LoadHistoric(ctx, func(yield func(model.Pair) bool) {
		for _, e := range edges {
			if !yield(e) {
				return
			}
		}
	})

	return net, nil
}

func encodeSnapshot(edges []model.Pair, compression Compression) ([]byte, error) {
	body := encodeEdges(edges)

	stored, storedSize, err := compressBody(body, compression)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Write(snapshotMagic[:])
	buf.WriteByte(byte(compression))

	var header [8]byte
	binary.LittleEndian.PutUint32(header[0:], uint32(len(body)))
	binary.LittleEndian.PutUint32(header[4:], storedSize)
	buf.Write(header[:])
	buf.Write(stored)

	var footer [4]byte
	binary.LittleEndian.PutUint32(footer[:], hash.CRC32C(buf.Bytes()))
	buf.Write(footer[:])

	return buf.Bytes(), nil
}

func decodeSnapshot(data []byte) ([]model.Pair, error) {
	if len(data) < 4+1+8+4 {
		return nil, fmt.Errorf("%w: truncated (%d bytes)", ErrBadSnapshot, len(data))
	}

	payload, checksum := data[:len(data)-4], binary.LittleEndian.Uint32(data[len(data)-4:])
	if hash.CRC32C(payload) != checksum {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrBadSnapshot)
	}

	if !bytes.Equal(payload[:4], snapshotMagic[:]) {
		return nil, fmt.Errorf("%w: magic mismatch", ErrBadSnapshot)
	}
	compression := Compression(payload[4])

	uncompressedSize := binary.LittleEndian.Uint32(payload[5:])
	storedSize := binary.LittleEndian.Uint32(payload[9:])
	stored := payload[13:]

	body, err := decompressBody(stored, uncompressedSize, storedSize, compression)
	if err != nil {
		return nil, err
	}

	return decodeEdges(body)
}

// encodeEdges serializes pairs with a user table so each edge costs eight
// bytes regardless of identifier size.
func encodeEdges(edges []model.Pair) []byte {
	index := make(map[model.UserID]uint32)
	var users []model.UserID
	intern := func(u model.UserID) uint32 {
		if i, ok := index[u]; ok {
			return i
		}
		i := uint32(len(users))
		index[u] = i
		users = append(users, u)
		return i
	}

	type edge struct{ a, b uint32 }
	encoded := make([]edge, len(edges))
	for i, e := range edges {
		encoded[i] = edge{a: intern(e.A), b: intern(e.B)}
	}

	var buf bytes.Buffer
	var scratch [8]byte

	binary.LittleEndian.PutUint32(scratch[:4], uint32(len(users)))
	buf.Write(scratch[:4])
	for _, u := range users {
		buf.WriteByte(byte(u.Kind()))
		if v, ok := u.Uint64(); ok {
			binary.LittleEndian.PutUint64(scratch[:8], v)
			buf.Write(scratch[:8])
		} else {
			s, _ := u.StringValue()
			binary.LittleEndian.PutUint32(scratch[:4], uint32(len(s)))
			buf.Write(scratch[:4])
			buf.WriteString(s)
		}
	}

	binary.LittleEndian.PutUint32(scratch[:4], uint32(len(encoded)))
	buf.Write(scratch[:4])
	for _, e := range encoded {
		binary.LittleEndian.PutUint32(scratch[:4], e.a)
		binary.LittleEndian.PutUint32(scratch[4:8], e.b)
		buf.Write(scratch[:8])
	}

	return buf.Bytes()
}

func decodeEdges(body []byte) ([]model.Pair, error) {
	r := bytes.NewReader(body)

	var userCount uint32
	if err := binary.Read(r, binary.LittleEndian, &userCount); err != nil {
		return nil, fmt.Errorf("%w: user table: %v", ErrBadSnapshot, err)
	}

	users := make([]model.UserID, userCount)
	for i := range users {
		kind, err := r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("%w: user table: %v", ErrBadSnapshot, err)
		}

		switch model.UserIDKind(kind) {
		case model.UserIDKindUint64:
			var v uint64
			if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
				return nil, fmt.Errorf("%w: user table: %v", ErrBadSnapshot, err)
			}
			users[i] = model.UID(v)
		case model.UserIDKindString:
			var n uint32
			if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
				return nil, fmt.Errorf("%w: user table: %v", ErrBadSnapshot, err)
			}
			s := make([]byte, n)
			if _, err := r.Read(s); err != nil {
				return nil, fmt.Errorf("%w: user table: %v", ErrBadSnapshot, err)
			}
			users[i] = model.UserString(string(s))
		default:
			return nil, fmt.Errorf("%w: unknown user kind %d", ErrBadSnapshot, kind)
		}
	}

	var edgeCount uint32
	if err := binary.Read(r, binary.LittleEndian, &edgeCount); err != nil {
		return nil, fmt.Errorf("%w: edge list: %v", ErrBadSnapshot, err)
	}

	edges := make([]model.Pair, edgeCount)
	for i := range edges {
		var a, b uint32
		if err := binary.Read(r, binary.LittleEndian, &a); err != nil {
			return nil, fmt.Errorf("%w: edge list: %v", ErrBadSnapshot, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &b); err != nil {
			return nil, fmt.Errorf("%w: edge list: %v", ErrBadSnapshot, err)
		}
		if a >= userCount || b >= userCount {
			return nil, fmt.Errorf("%w: edge references unknown user", ErrBadSnapshot)
		}
		edges[i] = model.Pair{A: users[a], B: users[b]}
	}

	return edges, nil
}

// compressBody compresses body; storedSize 0 means stored raw.
func compressBody(body []byte, compression Compression) ([]byte, uint32, error) {
	switch compression {
	case CompressionNone:
		return body, 0, nil

	case CompressionLZ4:
		dst := make([]byte, lz4.CompressBlockBound(len(body)))
		n, err := lz4.CompressBlock(body, dst, nil)
		if err != nil {
			return nil, 0, err
		}
		if n == 0 || n >= len(body) {
			// Incompressible; store raw.
			return body, 0, nil
		}
		return dst[:n], uint32(n), nil

	case CompressionZSTD:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, 0, err
		}
		compressed := enc.EncodeAll(body, nil)
		enc.Close()
		if len(compressed) >= len(body) {
			return body, 0, nil
		}
		return compressed, uint32(len(compressed)), nil

	default:
		return nil, 0, fmt.Errorf("unknown compression type %d", compression)
	}
}

func decompressBody(stored []byte, uncompressedSize, storedSize uint32, compression Compression) ([]byte, error) {
	if storedSize == 0 {
		if uint32(len(stored)) != uncompressedSize {
			return nil, fmt.Errorf("%w: body size mismatch", ErrBadSnapshot)
		}
		return stored, nil
	}
	if uint32(len(stored)) != storedSize {
		return nil, fmt.Errorf("%w: body size mismatch", ErrBadSnapshot)
	}

	switch compression {
	case CompressionLZ4:
		body := make([]byte, uncompressedSize)
		n, err := lz4.UncompressBlock(stored, body)
		if err != nil {
			return nil, fmt.Errorf("%w: lz4: %v", ErrBadSnapshot, err)
		}
		if uint32(n) != uncompressedSize {
			return nil, fmt.Errorf("%w: body size mismatch", ErrBadSnapshot)
		}
		return body, nil

	case CompressionZSTD:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()

		body, err := dec.DecodeAll(stored, make([]byte, 0, uncompressedSize))
		if err != nil {
			return nil, fmt.Errorf("%w: zstd: %v", ErrBadSnapshot, err)
		}
		if uint32(len(body)) != uncompressedSize {
			return nil, fmt.Errorf("%w: body size mismatch", ErrBadSnapshot)
		}
		return body, nil

	default:
		return nil, fmt.Errorf("%w: unknown compression type %d", ErrBadSnapshot, compression)
	}
}
