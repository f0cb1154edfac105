package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esther-house/internal/models"
)

func newTestClient(handler http.Handler) (*ETicketsClient, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewETicketsClient(ETicketsConfig{
		APIKey:   "public-key",
		SalesKey: "sales-key",
		BaseURL:  server.URL,
	})
	return client, server
}

func TestClientSendsUniformHeaders(t *testing.T) {
	var gotHeaders http.Header
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		json.NewEncoder(w).Encode([]ProviderEvent{})
	}))
	defer server.Close()

	_, err := client.GetEvents(context.Background(), EventListParams{})
	require.NoError(t, err)

	assert.Equal(t, "public-key", gotHeaders.Get("key"))
	assert.Equal(t, "fr_FR", gotHeaders.Get("Accept-Language"))
	assert.Equal(t, "1", gotHeaders.Get("currency"))
	assert.Empty(t, gotHeaders.Get("Credential"), "reads must not carry the sales key")
}

func TestClientSendsSalesCredentialOnWrites(t *testing.T) {
	var gotCredential string
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCredential = r.Header.Get("Credential")
		w.Write([]byte("1001"))
	}))
	defer server.Close()

	_, err := client.CreateOrder(context.Background(), &ProviderOrderCreate{EventID: 42})
	require.NoError(t, err)
	assert.Equal(t, "sales-key", gotCredential)
}

func TestCreateOrderParsesBareNumber(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/order/create", r.URL.Path)
		w.Write([]byte("1001"))
	}))
	defer server.Close()

	orderID, err := client.CreateOrder(context.Background(), &ProviderOrderCreate{EventID: 42})
	require.NoError(t, err)
	assert.Equal(t, 1001, orderID)
}

func TestCreateOrderParsesWrappedID(t *testing.T) {
	responses := []string{`{"data":{"id":1002}}`, `{"id":1003}`}
	want := []int{1002, 1003}

	for i, response := range responses {
		client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(response))
		}))

		orderID, err := client.CreateOrder(context.Background(), &ProviderOrderCreate{EventID: 42})
		require.NoError(t, err)
		assert.Equal(t, want[i], orderID)
		server.Close()
	}
}

func TestCreateOrderRejectsResponseWithoutID(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	_, err := client.CreateOrder(context.Background(), &ProviderOrderCreate{EventID: 42})
	assert.Error(t, err)
}

func TestProviderErrorCarriesStatusAndBody(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"sold out"}`))
	}))
	defer server.Close()

	err := client.AddTickets(context.Background(), 1001, []TicketLine{{CategoryID: 7, Count: 2}})
	require.Error(t, err)

	var providerErr *models.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, http.StatusUnprocessableEntity, providerErr.Status)
	assert.Contains(t, providerErr.Body, "sold out")
	assert.Equal(t, "/order/1001/tickets", providerErr.Endpoint)
}

func TestResolvePaymentURLFallsBackAcrossEndpoints(t *testing.T) {
	var paths []string
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		switch r.URL.Path {
		case "/order/1001/payment":
			w.WriteHeader(http.StatusNotFound)
		case "/order/1001/pay":
			w.Write([]byte(`{"data":{"payment_url":"https://pay.example.com/1001"}}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	url, err := client.ResolvePaymentURL(context.Background(), 1001, "card",
		"https://site/confirm", "https://site/cancel")
	require.NoError(t, err)

	assert.Equal(t, "https://pay.example.com/1001", url)
	assert.Equal(t, []string{"/order/1001/payment", "/order/1001/pay"}, paths)
}

func TestResolvePaymentURLAllVariantsFail(t *testing.T) {
	var calls int
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := client.ResolvePaymentURL(context.Background(), 1001, "card", "", "")
	require.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestParsePaymentURLVariants(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`{"payment_url":"https://a"}`, "https://a"},
		{`{"data":{"payment_url":"https://b"}}`, "https://b"},
		{`{"url":"https://c"}`, "https://c"},
		{`{"ok":true}`, ""},
		{`not json`, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parsePaymentURL([]byte(tt.body)))
	}
}

func TestGetOrderUnwrapsDataEnvelope(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/order/1001", r.URL.Path)
		w.Write([]byte(`{"data":{"order_id":1001,"status":"paid","amount":90}}`))
	}))
	defer server.Close()

	order, err := client.GetOrder(context.Background(), "1001")
	require.NoError(t, err)
	assert.Equal(t, 1001, order.OrderID)
	assert.Equal(t, "paid", order.Status)
}

func TestGetOrderAcceptsBareObject(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"order_id":1001,"status":"pending"}`))
	}))
	defer server.Close()

	order, err := client.GetOrder(context.Background(), "1001")
	require.NoError(t, err)
	assert.Equal(t, "pending", order.Status)
}

func TestSendTicketsModeSegment(t *testing.T) {
	var paths []string
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)

		var payload struct {
			Email string `json:"email"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "a@b.ch", payload.Email)

		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	require.NoError(t, client.SendTickets(context.Background(), "1001", "a@b.ch", ""))
	require.NoError(t, client.SendTickets(context.Background(), "1001", "a@b.ch", "pdf"))
	require.NoError(t, client.SendTickets(context.Background(), "1001", "a@b.ch", "passbook"))

	assert.Equal(t, []string{
		"/order/1001/send-tickets",
		"/order/1001/send-tickets",
		"/order/1001/send-tickets/passbook",
	}, paths)
}

func TestGetRequestsRetryOnServerError(t *testing.T) {
	var calls int
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode([]ProviderZone{{ZoneID: 1, Name: "Parterre"}})
	}))
	defer server.Close()

	zones, err := client.GetEventZones(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, zones, 1)
	assert.Equal(t, 2, calls)
}

func TestWritesAreNeverRetried(t *testing.T) {
	var calls int
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := client.CreateOrder(context.Background(), &ProviderOrderCreate{EventID: 42})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}
