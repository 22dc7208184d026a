package hotline

import (
	"encoding/binary"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type trackerEntry struct {
	ip          [4]byte
	port        uint16
	userCount   uint16
	name        string
	description string
}

func encodeTrackerEntry(e trackerEntry) []byte {
	buf := make([]byte, 8)
	copy(buf[0:4], e.ip[:])
	binary.BigEndian.PutUint16(buf[4:6], e.port)
	binary.BigEndian.PutUint16(buf[6:8], e.userCount)
	buf = append(buf, byte(len(e.name)))
	buf = append(buf, []byte(e.name)...)
	buf = append(buf, byte(len(e.description)))
	buf = append(buf, []byte(e.description)...)
	return buf
}

func runFakeTracker(t *testing.T, ln net.Listener, entries []trackerEntry) {
	t.Helper()
	conn, err := ln.Accept()
	require.NoError(t, err)
	defer conn.Close()

	in := make([]byte, 6)
	_, err = io.ReadFull(conn, in)
	require.NoError(t, err)
	require.Equal(t, "HTRK", string(in[0:4]))

	out := make([]byte, 6)
	copy(out[0:4], "HTRK")
	binary.BigEndian.PutUint16(out[4:6], 1)
	_, err = conn.Write(out)
	require.NoError(t, err)

	var body []byte
	for _, e := range entries {
		body = append(body, encodeTrackerEntry(e)...)
	}

	header := make([]byte, 8)
	binary.BigEndian.PutUint16(header[4:6], uint16(len(entries)))
	binary.BigEndian.PutUint16(header[6:8], uint16(len(entries)))
	_, err = conn.Write(header)
	require.NoError(t, err)
	_, err = conn.Write(body)
	require.NoError(t, err)
}

func TestFetchTrackerListingParsesSingleBatch(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	addr := ln.Addr().(*net.TCPAddr)

	entries := []trackerEntry{
		{ip: [4]byte{10, 0, 0, 1}, port: 5500, userCount: 3, name: "Test Server", description: "A test server"},
		{ip: [4]byte{10, 0, 0, 2}, port: 5501, userCount: 0, name: "---", description: ""},
	}

	go runFakeTracker(t, ln, entries)

	listings, err := FetchTrackerListing("127.0.0.1", uint16(addr.Port), 2*time.Second)
	require.NoError(t, err)

	require.Len(t, listings, 1, "the dash placeholder entry must be filtered out")
	assert.Equal(t, "10.0.0.1", listings[0].Address)
	assert.Equal(t, uint16(5500), listings[0].Port)
	assert.Equal(t, uint16(3), listings[0].UserCount)
	assert.Equal(t, "Test Server", listings[0].Name)
	assert.Equal(t, "A test server", listings[0].Description)
}

func TestFetchTrackerListingRejectsBadHandshakeMagic(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	addr := ln.Addr().(*net.TCPAddr)

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		buf := make([]byte, 6)
		io.ReadFull(conn, buf)
		conn.Write([]byte("XXXX\x00\x01"))
	}()

	_, err = FetchTrackerListing("127.0.0.1", uint16(addr.Port), 2*time.Second)
	require.Error(t, err)
}

func TestIsSeparatorPlaceholder(t *testing.T) {
	t.Parallel()

	assert.True(t, isSeparatorPlaceholder("---"))
	assert.True(t, isSeparatorPlaceholder("-----"))
	assert.False(t, isSeparatorPlaceholder("Real Server"))
	assert.False(t, isSeparatorPlaceholder("--"))
}
