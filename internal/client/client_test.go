package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_CarriesTokenForward(t *testing.T) {
	var seenAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"token": "signed-token",
				"user":  map[string]any{"id": 1, "username": "alice"},
			})
		case "/products":
			seenAuth = r.Header.Get("Authorization")
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode([]map[string]any{})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	token, user, err := c.Login(context.Background(), "alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "signed-token", token)
	assert.Equal(t, "alice", user.Username)

	_, err = c.Products(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer signed-token", seenAuth)
}

func TestRegister_SurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "username already exists"})
	}))
	defer srv.Close()

	_, err := New(srv.URL).Register(context.Background(), "alice", "secret1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "username already exists")
}

func TestDeleteProduct_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "unauthorized"})
	}))
	defer srv.Close()

	err := New(srv.URL).DeleteProduct(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unauthorized")
}
