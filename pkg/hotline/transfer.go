package hotline

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"

	"github.com/google/uuid"
	"github.com/hotline-go/hotline/internal/bytesize"
	"github.com/hotline-go/hotline/internal/logger"
	hl "github.com/hotline-go/hotline/internal/protocol/hotline"
)

// suspiciousSizeThreshold is the point above which a declared fork/file
// size is treated as corrupt metadata rather than a real size: rather than
// matching specific "known-bad" sentinel constants, any declared size at
// or past this threshold combined with a zero fork-header size falls back
// to read-until-EOF.
const suspiciousSizeThreshold = 2 << 30 // ~2 GiB

// transferChunkSize is the read/write granularity for DATA-fork and banner
// transfers.
const transferChunkSize = 64 << 10

// ProgressFunc receives the bytes transferred so far and the total,
// fired roughly every 2% of progress plus once on completion.
type ProgressFunc func(bytesDone, total int64)

// filpHeaderSize is the length of the FILP envelope header: "FILP", 16-bit
// version, 16 reserved bytes, 16-bit fork count.
const filpHeaderSize = 24

// forkHeaderSize is the length of a FILP fork header: 4-byte type, 32-bit
// compression, 4 reserved, 32-bit size.
const forkHeaderSize = 16

type forkHeader struct {
	Type        string
	Compression uint32
	Size        uint32
}

func readForkHeader(r io.Reader) (forkHeader, error) {
	buf := make([]byte, forkHeaderSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return forkHeader{}, err
	}
	return forkHeader{
		Type:        string(buf[0:4]),
		Compression: binary.BigEndian.Uint32(buf[4:8]),
		Size:        binary.BigEndian.Uint32(buf[12:16]),
	}, nil
}

func encodeForkHeader(forkType string, size uint32) []byte {
	buf := make([]byte, forkHeaderSize)
	copy(buf[0:4], forkType)
	binary.BigEndian.PutUint32(buf[12:16], size)
	return buf
}

// dialTransferChannel opens the secondary TCP connection used for file
// transfers, on the control channel's host at port+1.
func (s *Session) dialTransferChannel() (net.Conn, error) {
	addr := fmt.Sprintf("%s:%d", s.opts.Address, s.opts.Port+1)
	conn, err := net.DialTimeout("tcp", addr, s.opts.ConnectTimeout)
	if err != nil {
		return nil, wrapError(KindTransport, err)
	}
	return conn, nil
}

// writeHTXF sends the 16-byte HTXF handshake: "HTXF", the reference
// number, the data size (0 for downloads, total payload length for
// uploads), and 4 reserved zero bytes.
func writeHTXF(conn net.Conn, refNum uint32, dataSize uint32) error {
	buf := make([]byte, 16)
	copy(buf[0:4], "HTXF")
	binary.BigEndian.PutUint32(buf[4:8], refNum)
	binary.BigEndian.PutUint32(buf[8:12], dataSize)
	_, err := conn.Write(buf)
	return err
}

// DownloadFile requests a file at path and downloads it over the
// file-transfer channel. expectedSize, if nonzero, is used when the DATA
// fork header declares size 0 (a known server bug); progress, if non-nil,
// is called roughly every 2%.
func (s *Session) DownloadFile(path []string, expectedSize int64, progress ProgressFunc) ([]byte, error) {
	id := s.nextTransactionID()
	t := hl.NewRequest(id, hl.TranDownloadFile,
		hl.NewBytesField(hl.FieldFilePath, hl.EncodePath(path)),
	)

	reply, err := s.request(t, s.opts.ReplyTimeout)
	if err != nil {
		return nil, err
	}

	refNum, err := refNumFromReply(reply)
	if err != nil {
		return nil, err
	}

	transferID := uuid.NewString()
	logger.Debug("starting file download", logger.RefNum(refNum), logger.TransferID(transferID), logger.Path(joinPath(path)))

	conn, err := s.dialTransferChannel()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if err := writeHTXF(conn, refNum, 0); err != nil {
		return nil, wrapError(KindTransport, err)
	}

	s.opts.Metrics.transferStarted()
	defer s.opts.Metrics.transferFinished()

	data, err := readFILPEnvelope(conn, expectedSize, progress)
	if err == nil {
		s.opts.Metrics.addTransferBytes("download", len(data))
	}
	return data, err
}

// DownloadBanner downloads the server banner image. Unlike a regular file
// download, the server streams raw bytes after the HTXF handshake with no
// FILP envelope; the client reads exactly TransferSize bytes.
func (s *Session) DownloadBanner() ([]byte, error) {
	id := s.nextTransactionID()
	t := hl.NewRequest(id, hl.TranDownloadBanner)

	reply, err := s.request(t, s.opts.ReplyTimeout)
	if err != nil {
		return nil, err
	}

	refNum, err := refNumFromReply(reply)
	if err != nil {
		return nil, err
	}

	size, ok := reply.Field(hl.FieldTransferSize)
	if !ok {
		return nil, newError(KindProtocol, "banner reply missing TransferSize")
	}
	total, err := size.Uint32()
	if err != nil {
		return nil, wrapError(KindProtocol, err)
	}

	conn, err := s.dialTransferChannel()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if err := writeHTXF(conn, refNum, 0); err != nil {
		return nil, wrapError(KindTransport, err)
	}

	buf := make([]byte, total)
	if _, err := io.ReadFull(conn, buf); err != nil {
		return nil, wrapError(KindFileTransfer, err)
	}
	return buf, nil
}

// UploadFile requests to upload data as path's name and streams it over
// the file-transfer channel with a minimal FILP envelope: an empty INFO
// fork and a DATA fork carrying the full payload.
func (s *Session) UploadFile(path []string, data []byte, progress ProgressFunc) error {
	id := s.nextTransactionID()
	t := hl.NewRequest(id, hl.TranUploadFile,
		hl.NewBytesField(hl.FieldFilePath, hl.EncodePath(path)),
	)

	reply, err := s.request(t, s.opts.ReplyTimeout)
	if err != nil {
		return err
	}

	refNum, err := refNumFromReply(reply)
	if err != nil {
		return err
	}

	conn, err := s.dialTransferChannel()
	if err != nil {
		return err
	}
	defer conn.Close()

	envelopeSize := uint32(filpHeaderSize + forkHeaderSize + forkHeaderSize + len(data))
	if err := writeHTXF(conn, refNum, envelopeSize); err != nil {
		return wrapError(KindTransport, err)
	}

	s.opts.Metrics.transferStarted()
	defer s.opts.Metrics.transferFinished()

	header := make([]byte, filpHeaderSize)
	copy(header[0:4], "FILP")
	binary.BigEndian.PutUint16(header[4:6], 1)
	binary.BigEndian.PutUint16(header[22:24], 2)
	if _, err := conn.Write(header); err != nil {
		return wrapError(KindTransport, err)
	}

	if _, err := conn.Write(encodeForkHeader("INFO", 0)); err != nil {
		return wrapError(KindTransport, err)
	}

	if _, err := conn.Write(encodeForkHeader("DATA", uint32(len(data)))); err != nil {
		return wrapError(KindTransport, err)
	}

	if err := writeChunked(conn, data, progress); err != nil {
		return err
	}
	s.opts.Metrics.addTransferBytes("upload", len(data))
	return nil
}

func refNumFromReply(reply *hl.Transaction) (uint32, error) {
	f, ok := reply.Field(hl.FieldRefNum)
	if !ok {
		return 0, newError(KindProtocol, "reply missing ReferenceNumber")
	}
	return f.Uint32()
}

// readFILPEnvelope reads the FILP header and its forks, returning the
// concatenated DATA fork bytes. INFO and MACR forks are consumed and
// discarded.
func readFILPEnvelope(r io.Reader, expectedSize int64, progress ProgressFunc) ([]byte, error) {
	magic := make([]byte, 4)
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, wrapError(KindFileTransfer, err)
	}
	if string(magic) != "FILP" {
		return nil, newError(KindFileTransfer, "bad FILP magic")
	}

	rest := make([]byte, 20) // version (2) + reserved (16) + fork count (2)
	if _, err := io.ReadFull(r, rest); err != nil {
		return nil, wrapError(KindFileTransfer, err)
	}
	forkCount := binary.BigEndian.Uint16(rest[18:20])

	var data []byte
	for i := uint16(0); i < forkCount; i++ {
		fh, err := readForkHeader(r)
		if err != nil {
			return nil, wrapError(KindFileTransfer, err)
		}
		if fh.Compression != 0 {
			return nil, newError(KindFileTransfer, fmt.Sprintf("unsupported fork compression %d", fh.Compression))
		}

		switch fh.Type {
		case "DATA":
			bytes, err := readDataFork(r, fh.Size, expectedSize, progress)
			if err != nil {
				return nil, err
			}
			data = bytes
		default:
			// INFO, MACR: consume and discard.
			if _, err := io.CopyN(io.Discard, r, int64(fh.Size)); err != nil && err != io.EOF {
				return nil, wrapError(KindFileTransfer, err)
			}
		}
	}

	return data, nil
}

// readDataFork implements the size-field pathology policy: a zero declared
// size falls back to the caller-supplied expected size; an expected size
// at or above suspiciousSizeThreshold combined with a zero fork header
// falls back to read-until-EOF, treating EOF after at least one byte as
// success.
func readDataFork(r io.Reader, declaredSize uint32, expectedSize int64, progress ProgressFunc) ([]byte, error) {
	target := int64(declaredSize)

	readUntilEOF := false
	if declaredSize == 0 {
		if expectedSize >= suspiciousSizeThreshold {
			readUntilEOF = true
		} else if expectedSize > 0 {
			target = expectedSize
		}
	}

	if readUntilEOF {
		return readChunkedUntilEOF(r, progress)
	}

	return readChunked(r, target, progress)
}

func readChunked(r io.Reader, total int64, progress ProgressFunc) ([]byte, error) {
	if total == 0 {
		return nil, nil
	}

	buf := make([]byte, 0, total)
	chunk := make([]byte, transferChunkSize)
	var read int64
	lastReported := int64(-1)

	for read < total {
		want := int64(len(chunk))
		if remaining := total - read; remaining < want {
			want = remaining
		}
		n, err := io.ReadFull(r, chunk[:want])
		if n > 0 {
			buf = append(buf, chunk[:n]...)
			read += int64(n)
		}
		if err != nil {
			return nil, wrapError(KindFileTransfer, fmt.Errorf("download short after %s: %w", bytesize.ByteSize(read), err))
		}
		reportProgress(progress, read, total, &lastReported)
	}

	return buf, nil
}

// readChunkedUntilEOF reads until the connection closes, treating any EOF
// after at least one byte as successful completion rather than an error.
func readChunkedUntilEOF(r io.Reader, progress ProgressFunc) ([]byte, error) {
	var buf []byte
	chunk := make([]byte, transferChunkSize)
	var read int64
	lastReported := int64(-1)

	for {
		n, err := r.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
			read += int64(n)
			reportProgress(progress, read, read, &lastReported)
		}
		if err != nil {
			if err == io.EOF && read > 0 {
				if progress != nil {
					progress(read, read)
				}
				return buf, nil
			}
			if err == io.EOF {
				return nil, newError(KindFileTransfer, "connection closed before any data was read")
			}
			return nil, wrapError(KindFileTransfer, err)
		}
	}
}

func writeChunked(w io.Writer, data []byte, progress ProgressFunc) error {
	total := int64(len(data))
	var written int64
	lastReported := int64(-1)

	for written < total {
		end := written + transferChunkSize
		if end > total {
			end = total
		}
		n, err := w.Write(data[written:end])
		written += int64(n)
		if err != nil {
			return wrapError(KindTransport, err)
		}
		reportProgress(progress, written, total, &lastReported)
	}
	return nil
}

func reportProgress(progress ProgressFunc, done, total int64, lastReported *int64) {
	if progress == nil || total <= 0 {
		return
	}
	pct := done * 100 / total
	if pct >= *lastReported+2 || done == total {
		*lastReported = pct
		progress(done, total)
	}
}
