package main

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewHTTPServer(t *testing.T) {
	httpServer := newHTTPServer("0.0.0.0:5000", http.NewServeMux())

	assert.Equal(t, "0.0.0.0:5000", httpServer.Addr)
	assert.Equal(t, 10*time.Second, httpServer.ReadHeaderTimeout)
}
