package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ganot/tlink/internal/repository"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreAnyFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreAnyFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreAnyFunction("net/rpc.(*Client).input"),
	)
}

const suiteResponse = `<?xml version="1.0"?>
<methodResponse><params><param><value><struct>
<member><name>id</name><value><string>7</string></value></member>
<member><name>name</name><value><string>S1</string></value></member>
<member><name>parent_id</name><value><string>24</string></value></member>
</struct></value></param></params></methodResponse>`

const faultResponse = `<?xml version="1.0"?>
<methodResponse><fault><value><struct>
<member><name>faultCode</name><value><int>2000</int></value></member>
<member><name>faultString</name><value><string>Can not authenticate client: invalid developer key</string></value></member>
</struct></value></fault></methodResponse>`

type capturedRequest struct {
	body string
}

func newXMLServer(t *testing.T, response string, captured *capturedRequest) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		if captured != nil {
			captured.body = string(data)
		}
		w.Header().Set("Content-Type", "text/xml")
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	rt := &http.Transport{}
	client, err := NewClient(url, rt)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Close()
		rt.CloseIdleConnections()
	})
	return client
}

func TestClient_CallDecodesStruct(t *testing.T) {
	captured := &capturedRequest{}
	server := newXMLServer(t, suiteResponse, captured)
	client := newTestClient(t, server.URL)

	caller, err := WithDevKey(client, "secret")
	require.NoError(t, err)

	reply, err := caller.Call(context.Background(), "getTestSuiteByID", map[string]any{"testsuiteid": "7"})
	require.NoError(t, err)

	res := Decode(reply)
	rec, ok := res.First()
	require.True(t, ok)
	require.Equal(t, "7", rec.String("id"))
	require.Equal(t, "24", rec.String("parent_id"))
	require.NoError(t, res.Err())

	require.Contains(t, captured.body, "<methodName>tl.getTestSuiteByID</methodName>")
	require.Contains(t, captured.body, "devKey")
	require.Contains(t, captured.body, "secret")
}

func TestClient_FaultIsRemoteError(t *testing.T) {
	server := newXMLServer(t, faultResponse, nil)
	client := newTestClient(t, server.URL)

	_, err := client.Call(context.Background(), "getProjects", map[string]any{"devKey": "bad"})
	require.Error(t, err)
	require.True(t, repository.IsRemote(err))
	require.Contains(t, err.Error(), "invalid developer key")
}

func TestClient_CanceledContext(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:1/xmlrpc.php")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Call(ctx, "ping", nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewClient_RequiresEndpoint(t *testing.T) {
	_, err := NewClient("", nil)
	require.ErrorIs(t, err, repository.ErrInvalidArgument)
}
