// Package testserver runs the full tlink stack against an in-memory TestLink.
package testserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ganot/tlink/internal/app"
	"github.com/ganot/tlink/internal/mcp"
	"github.com/ganot/tlink/internal/sqlite"
	"github.com/ganot/tlink/internal/transport"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

// DevKey is the developer key the fake accepts.
const DevKey = "0123456789abcdef"

type TestServer struct {
	Fake    *Fake
	DB      *sqlite.DB
	App     *app.App
	MCP     *sdkmcp.Server
	Server  *httptest.Server
	Journal *sqlite.JournalRepository
}

// New wires the services over a seeded Fake, an in-memory journal and an
// HTTP server exposing the MCP endpoint.
func New(t *testing.T) *TestServer {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	fake := NewFake(DevKey)
	caller, err := transport.WithDevKey(fake, DevKey)
	require.NoError(t, err)

	journal := sqlite.NewJournalRepository(db)
	a := app.New(caller, journal, nil)

	server := mcp.NewServer(mcp.Config{
		Services:      Services(a),
		TransportMode: "http",
	})
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server { return server }, nil)
	httpServer := httptest.NewServer(transport.NewServer(mcpHandler, a.Remote))

	ts := &TestServer{
		Fake:    fake,
		DB:      db,
		App:     a,
		MCP:     server,
		Server:  httpServer,
		Journal: journal,
	}

	t.Cleanup(func() {
		httpServer.Close()
		_ = db.Close()
	})

	return ts
}

// Services exposes the app's services to the MCP layer.
func Services(a *app.App) mcp.Services {
	return mcp.Services{
		Projects: a.Projects,
		Suites:   a.Suites,
		Cases:    a.Cases,
		Plans:    a.Plans,
		Reporter: a.Reporter,
		History:  a.History,
	}
}

// Connect opens an in-memory MCP client session on the server.
func (ts *TestServer) Connect(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	clientTransport, serverTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := ts.MCP.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "tlink-test", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = session.Close()
		_ = serverSession.Wait()
	})
	return session
}
