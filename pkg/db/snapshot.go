package db

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pierrec/lz4/v4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/andypymont/inception/pkg/domain"
)

// Export writes every row in the store to w as a portable snapshot:
// msgpack payload, lz4 block compression, fixed header. Unlike the SQLite
// file itself, a snapshot round-trips between backing engines.
func (d *Database) Export(w io.Writer) error {
	rows, err := d.adapter.FetchRows("")
	if err != nil {
		return err
	}

	data := snapshotData{Collections: make(map[string]map[string]string)}
	for _, row := range rows {
		coll, exists := data.Collections[row.Collection]
		if !exists {
			coll = make(map[string]string)
			data.Collections[row.Collection] = coll
		}
		coll[strconv.FormatInt(row.ID, 10)] = string(row.Blob)
	}

	payload, err := msgpack.Marshal(&data)
	if err != nil {
		return fmt.Errorf("failed to encode MessagePack: %w", err)
	}

	compressed := make([]byte, lz4.CompressBlockBound(len(payload)))
	var hashTable [1 << 16]int
	n, err := lz4.CompressBlock(payload, compressed, hashTable[:])
	if err != nil {
		return fmt.Errorf("failed to compress snapshot: %w", err)
	}

	// CompressBlock reports incompressible input as a zero-length block;
	// store the payload raw in that case.
	body := compressed[:n]
	var flags uint8
	if n == 0 {
		body = payload
		flags = flagUncompressed
	}

	if err := writeHeader(w, len(payload), flags); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("failed to write snapshot data: %w", err)
	}
	return nil
}

// Import reads a snapshot from r and upserts every row it holds, all in
// one transaction. Rows whose ids already exist are replaced; everything
// else in the store is left alone.
func (d *Database) Import(r io.Reader) error {
	header, err := readHeader(r)
	if err != nil {
		return fmt.Errorf("invalid snapshot header: %w", err)
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read snapshot data: %w", err)
	}

	payload := body
	if header.Flags&flagUncompressed == 0 {
		payload = make([]byte, header.RawSize)
		n, err := lz4.UncompressBlock(body, payload)
		if err != nil {
			return fmt.Errorf("failed to decompress snapshot: %w", err)
		}
		payload = payload[:n]
	}

	var data snapshotData
	if err := msgpack.Unmarshal(payload, &data); err != nil {
		return fmt.Errorf("failed to decode MessagePack: %w", err)
	}

	var pending []domain.PendingRow
	for collection, blobs := range data.Collections {
		for key, blob := range blobs {
			id, err := strconv.ParseInt(key, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid row id %q in snapshot: %w", key, err)
			}
			pending = append(pending, domain.PendingRow{ID: id, Collection: collection, Blob: []byte(blob)})
		}
	}

	_, err = d.adapter.UpsertRows(pending)
	return err
}
