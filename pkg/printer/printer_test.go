package printer

import (
	"bytes"
	"context"
	"io"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrinterFromConfig(t *testing.T) {
	p, err := NewPrinterFromConfig("", "", "")
	require.NoError(t, err)
	assert.False(t, p.IsConnected(context.Background()))

	_, err = NewPrinterFromConfig(TypeUSB, "", "")
	assert.Error(t, err)

	_, err = NewPrinterFromConfig(TypeNetwork, "", "")
	assert.Error(t, err)

	_, err = NewPrinterFromConfig("bluetooth", "", "")
	assert.Error(t, err)
}

func TestNullPrinter_ReportsNotConfigured(t *testing.T) {
	err := NewNullPrinter().Print(context.Background(), []byte("x"))
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestUSBPrinter_WritesToDevice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lp0")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	p := NewUSBPrinter(path)
	assert.True(t, p.IsConnected(context.Background()))
	require.NoError(t, p.Print(context.Background(), []byte("receipt")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "receipt", string(got))
}

func TestUSBPrinter_MissingDevice(t *testing.T) {
	p := NewUSBPrinter(filepath.Join(t.TempDir(), "missing"))
	assert.False(t, p.IsConnected(context.Background()))
	assert.Error(t, p.Print(context.Background(), []byte("x")))
}

func TestNetworkPrinter_SendsBytes(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		data, _ := io.ReadAll(conn)
		received <- data
	}()

	p := NewNetworkPrinter(ln.Addr().String())
	doc := NewDocument(32).Text("hello")
	require.NoError(t, p.Print(context.Background(), doc.Bytes()))

	got := <-received
	assert.True(t, bytes.Contains(got, []byte("hello")))
}

func TestNetworkPrinter_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewNetworkPrinter("127.0.0.1:9")
	assert.Error(t, p.Print(ctx, []byte("x")))
	assert.False(t, p.IsConnected(ctx))
}
