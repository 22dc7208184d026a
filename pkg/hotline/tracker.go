package hotline

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	hl "github.com/hotline-go/hotline/internal/protocol/hotline"
)

// DefaultTrackerPort is the conventional port for the tracker directory
// service.
const DefaultTrackerPort = 5498

// trackerBatchCap bounds how many batches the client will read from a
// tracker before giving up, guarding against a server that never reports
// total_entries_parsed >= total_expected_entries.
const trackerBatchCap = 100

// TrackerListing is one server entry in a tracker's published list.
type TrackerListing struct {
	Address     string
	Port        uint16
	UserCount   uint16
	Name        string
	Description string
}

// FetchTrackerListing connects to a tracker, performs the HTRK handshake,
// and reads every batch of server listings it publishes.
func FetchTrackerListing(host string, port uint16, timeout time.Duration) ([]TrackerListing, error) {
	addr := fmt.Sprintf("%s:%d", host, port)
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, wrapError(KindTransport, err)
	}
	defer conn.Close()

	if err := trackerHandshake(conn); err != nil {
		return nil, err
	}

	return readTrackerBatches(conn)
}

func trackerHandshake(conn net.Conn) error {
	out := make([]byte, 6)
	copy(out[0:4], "HTRK")
	binary.BigEndian.PutUint16(out[4:6], 0x0001)
	if _, err := conn.Write(out); err != nil {
		return wrapError(KindTransport, err)
	}

	in := make([]byte, 6)
	if _, err := io.ReadFull(conn, in); err != nil {
		return wrapError(KindTransport, err)
	}
	if string(in[0:4]) != "HTRK" {
		return newError(KindProtocol, "bad tracker handshake magic")
	}
	return nil
}

func readTrackerBatches(conn net.Conn) ([]TrackerListing, error) {
	var listings []TrackerListing
	var totalExpected, totalParsed uint16

	for batch := 0; batch < trackerBatchCap; batch++ {
		header := make([]byte, 8)
		if _, err := io.ReadFull(conn, header); err != nil {
			if err == io.EOF && batch > 0 {
				break
			}
			return nil, wrapError(KindTransport, err)
		}

		totalExpected = binary.BigEndian.Uint16(header[4:6])
		entryCount := binary.BigEndian.Uint16(header[6:8])

		for i := uint16(0); i < entryCount; i++ {
			entry, err := readTrackerEntry(conn)
			if err != nil {
				return nil, err
			}
			totalParsed++
			if isSeparatorPlaceholder(entry.Name) {
				continue
			}
			listings = append(listings, entry)
		}

		if totalParsed >= totalExpected {
			break
		}
	}

	return listings, nil
}

func readTrackerEntry(conn net.Conn) (TrackerListing, error) {
	fixed := make([]byte, 8)
	if _, err := io.ReadFull(conn, fixed); err != nil {
		return TrackerListing{}, wrapError(KindTransport, err)
	}

	addr := net.IPv4(fixed[0], fixed[1], fixed[2], fixed[3]).String()
	port := binary.BigEndian.Uint16(fixed[4:6])
	userCount := binary.BigEndian.Uint16(fixed[6:8])

	name, err := readTrackerPString(conn)
	if err != nil {
		return TrackerListing{}, err
	}
	desc, err := readTrackerPString(conn)
	if err != nil {
		return TrackerListing{}, err
	}

	return TrackerListing{Address: addr, Port: port, UserCount: userCount, Name: name, Description: desc}, nil
}

func readTrackerPString(conn net.Conn) (string, error) {
	lenBuf := make([]byte, 1)
	if _, err := io.ReadFull(conn, lenBuf); err != nil {
		return "", wrapError(KindTransport, err)
	}
	if lenBuf[0] == 0 {
		return "", nil
	}
	payload := make([]byte, lenBuf[0])
	if _, err := io.ReadFull(conn, payload); err != nil {
		return "", wrapError(KindTransport, err)
	}
	return hl.Field{Payload: payload}.MacRomanString(), nil
}

func isSeparatorPlaceholder(name string) bool {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < 3 {
		return false
	}
	for _, c := range trimmed {
		if c != '-' {
			return false
		}
	}
	return true
}
