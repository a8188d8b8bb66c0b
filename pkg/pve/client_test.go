package pve

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{
		Endpoint:    srv.URL,
		TokenID:     "root@pam!dnset",
		TokenSecret: "secret",
	})
	require.NoError(t, err)
	return client
}

func TestNewClientValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "missing endpoint", cfg: Config{TokenID: "a", TokenSecret: "b"}},
		{name: "missing token", cfg: Config{Endpoint: "https://pve:8006"}},
		{name: "bad scheme", cfg: Config{Endpoint: "ftp://pve", TokenID: "a", TokenSecret: "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestGetUnwrapsEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PVEAPIToken=root@pam!dnset=secret", r.Header.Get("Authorization"))
		assert.Equal(t, "/api2/json/cluster/firewall/ipset", r.URL.Path)
		w.Write([]byte(`{"data":[{"name":"blocklist","comment":"auto_dns_example.com"}]}`))
	})

	v, err := client.Get(context.Background(), "/cluster/firewall/ipset")
	require.NoError(t, err)

	list := v.List()
	require.Len(t, list, 1)
	assert.Equal(t, "blocklist", list[0].Str("name"))
	assert.Equal(t, "auto_dns_example.com", list[0].Str("comment"))
}

func TestGetToleratesGarbage(t *testing.T) {
	tests := []struct {
		name string
		body string
		code int
	}{
		{name: "non-JSON body", body: "<html>oops</html>", code: 200},
		{name: "server error", body: "boom", code: 500},
		{name: "null data", body: `{"data":null}`, code: 200},
		{name: "empty body", body: "", code: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
				w.Write([]byte(tt.body))
			})

			v, _ := client.Get(context.Background(), "/nodes")
			assert.True(t, v.IsNil())
			assert.Empty(t, v.List())
		})
	}
}

func TestCreateMember(t *testing.T) {
	var gotForm url.Values
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api2/json/cluster/firewall/ipset/blocklist", r.URL.Path)
		require.NoError(t, r.ParseForm())
		gotForm = r.PostForm
		w.Write([]byte(`{"data":null}`))
	})

	err := client.CreateMember(context.Background(), "/cluster/firewall/ipset/blocklist", "93.184.216.34", "example.com")
	require.NoError(t, err)
	assert.Equal(t, "93.184.216.34", gotForm.Get("cidr"))
	assert.Equal(t, "example.com", gotForm.Get("comment"))
}

func TestDeleteMemberEscapesAddress(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`{"data":null}`))
	})

	err := client.DeleteMember(context.Background(), "/cluster/firewall/ipset/blocklist", "10.0.0.0/24")
	require.NoError(t, err)
	assert.Equal(t, "/api2/json/cluster/firewall/ipset/blocklist/10.0.0.0%2F24", gotPath)
}

func TestWriteFailureIsReturnedNotFatal(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	})

	err := client.CreateMember(context.Background(), "/cluster/firewall/ipset/blocklist", "203.0.113.1", "example.com")
	assert.Error(t, err)
}

func TestValueListNormalizesSingleObject(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"name":"only"}}`))
	})

	v, err := client.Get(context.Background(), "/whatever")
	require.NoError(t, err)

	list := v.List()
	require.Len(t, list, 1)
	assert.Equal(t, "only", list[0].Str("name"))
}
