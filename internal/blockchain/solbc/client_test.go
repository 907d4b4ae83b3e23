package solbc

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/solana-lock/internal/blockchain"
)

// rpcServer answers JSON-RPC calls with canned results keyed by method.
func rpcServer(t *testing.T, results map[string]func(params json.RawMessage) interface{}) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
			Params json.RawMessage `json:"params"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		handler, ok := results[req.Method]
		require.True(t, ok, "unexpected method %s", req.Method)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  handler(req.Params),
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_GetAccountData(t *testing.T) {
	payload := []byte{1, 2, 3, 4}
	present := solana.NewWallet().PublicKey()

	srv := rpcServer(t, map[string]func(json.RawMessage) interface{}{
		"getAccountInfo": func(params json.RawMessage) interface{} {
			var args []json.RawMessage
			_ = json.Unmarshal(params, &args)
			var address string
			_ = json.Unmarshal(args[0], &address)
			if address != present.String() {
				return map[string]interface{}{"context": map[string]interface{}{"slot": 1}, "value": nil}
			}
			return map[string]interface{}{
				"context": map[string]interface{}{"slot": 1},
				"value": map[string]interface{}{
					"data":       []string{base64.StdEncoding.EncodeToString(payload), "base64"},
					"executable": false,
					"lamports":   1,
					"owner":      solana.SystemProgramID.String(),
					"rentEpoch":  0,
				},
			}
		},
	})

	client := NewClient(srv.URL, rpc.CommitmentConfirmed, zap.NewNop())

	data, err := client.GetAccountData(context.Background(), present)
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	_, err = client.GetAccountData(context.Background(), solana.NewWallet().PublicKey())
	assert.ErrorIs(t, err, blockchain.ErrAccountNotFound)
}

func TestClient_WaitForConfirmation(t *testing.T) {
	calls := 0
	srv := rpcServer(t, map[string]func(json.RawMessage) interface{}{
		"getSignatureStatuses": func(json.RawMessage) interface{} {
			calls++
			status := "processed"
			if calls > 1 {
				status = "confirmed"
			}
			return map[string]interface{}{
				"context": map[string]interface{}{"slot": 1},
				"value": []interface{}{map[string]interface{}{
					"slot":               1,
					"confirmations":      nil,
					"err":                nil,
					"confirmationStatus": status,
				}},
			}
		},
	})

	client := NewClient(srv.URL, rpc.CommitmentConfirmed, zap.NewNop())
	err := client.WaitForConfirmation(context.Background(), solana.Signature{1}, 10*time.Second)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, calls, 2)
}

func TestClient_WaitForConfirmation_Failed(t *testing.T) {
	srv := rpcServer(t, map[string]func(json.RawMessage) interface{}{
		"getSignatureStatuses": func(json.RawMessage) interface{} {
			return map[string]interface{}{
				"context": map[string]interface{}{"slot": 1},
				"value": []interface{}{map[string]interface{}{
					"slot":               1,
					"err":                map[string]interface{}{"InstructionError": []interface{}{0, "Custom"}},
					"confirmationStatus": "confirmed",
				}},
			}
		},
	})

	client := NewClient(srv.URL, rpc.CommitmentConfirmed, zap.NewNop())
	err := client.WaitForConfirmation(context.Background(), solana.Signature{2}, 5*time.Second)
	assert.ErrorIs(t, err, ErrTransactionFailed)
}

func TestReached(t *testing.T) {
	assert.True(t, reached(rpc.ConfirmationStatusFinalized, rpc.CommitmentFinalized))
	assert.True(t, reached(rpc.ConfirmationStatusConfirmed, rpc.CommitmentConfirmed))
	assert.False(t, reached(rpc.ConfirmationStatusConfirmed, rpc.CommitmentFinalized))
	assert.False(t, reached(rpc.ConfirmationStatusProcessed, rpc.CommitmentConfirmed))
	assert.True(t, reached(rpc.ConfirmationStatusProcessed, rpc.CommitmentProcessed))
}
