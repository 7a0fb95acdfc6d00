package db

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	// Magic bytes identifying a snapshot stream
	snapshotMagic = "INCP"
	// Current snapshot format version
	snapshotVersion = 1
	// Flag set when the payload is stored raw because lz4 could not
	// shrink it (typical for very small stores)
	flagUncompressed = 1 << 0
)

// snapshotHeader prefixes every snapshot stream.
type snapshotHeader struct {
	Magic    [4]byte // "INCP"
	Version  uint8   // Format version
	Flags    uint8   // Reserved for future use
	Reserved [2]byte // Reserved for future use
	RawSize  uint64  // Uncompressed payload size in bytes
}

// writeHeader writes the snapshot header to the given writer
func writeHeader(w io.Writer, rawSize int, flags uint8) error {
	header := snapshotHeader{
		Magic:   [4]byte{'I', 'N', 'C', 'P'},
		Version: snapshotVersion,
		Flags:   flags,
		RawSize: uint64(rawSize),
	}
	return binary.Write(w, binary.LittleEndian, header)
}

// readHeader reads and validates the snapshot header
func readHeader(r io.Reader) (*snapshotHeader, error) {
	var header snapshotHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	if string(header.Magic[:]) != snapshotMagic {
		return nil, fmt.Errorf("invalid snapshot format: expected %s, got %s", snapshotMagic, string(header.Magic[:]))
	}

	if header.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version: %d", header.Version)
	}

	return &header, nil
}

// snapshotData is the msgpack payload: collection name -> row id (decimal
// string) -> document blob JSON.
type snapshotData struct {
	Collections map[string]map[string]string `msgpack:"collections"`
}
