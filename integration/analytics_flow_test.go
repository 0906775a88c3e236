package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// befriend runs the full request/accept flow between two users.
func befriend(t *testing.T, ts *TestServer, tokenFrom, idFrom, tokenTo, idTo string) {
	t.Helper()
	resp := sendRequest(t, ts, tokenFrom, idTo)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	acceptRequest(t, ts, tokenTo, idFrom)
}

func TestCommunitiesEndpoint(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	// Two communities: {A, B, C} and {D, E}.
	tokenA, idA := ts.SignupAndLogin(t, "Alice", "Smith")
	tokenB, idB := ts.SignupAndLogin(t, "Bob", "Jones")
	tokenC, idC := ts.SignupAndLogin(t, "Carol", "Brown")
	tokenD, idD := ts.SignupAndLogin(t, "Dave", "Miller")
	tokenE, idE := ts.SignupAndLogin(t, "Erin", "Wilson")

	befriend(t, ts, tokenA, idA, tokenB, idB)
	befriend(t, ts, tokenB, idB, tokenC, idC)
	befriend(t, ts, tokenD, idD, tokenE, idE)

	resp := ts.Get(t, "/api/analytics/communities", tokenA)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var result struct {
		Communities struct {
			Count      int        `json:"count"`
			MostActive [][]string `json:"most_active"`
		} `json:"communities"`
		Cached bool `json:"cached"`
	}
	ReadJSON(t, resp, &result)

	assert.Equal(t, 2, result.Communities.Count)
	require.Len(t, result.Communities.MostActive, 1)
	// The A-B-C chain is the longer path.
	assert.Len(t, result.Communities.MostActive[0], 3)
	assert.False(t, result.Cached)

	// The second call is served from cache.
	resp = ts.Get(t, "/api/analytics/communities", tokenA)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ReadJSON(t, resp, &result)
	assert.True(t, result.Cached)
	assert.Equal(t, 2, result.Communities.Count)
}

func TestSociableEndpoint(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	tokenA, idA := ts.SignupAndLogin(t, "Alice", "Smith")
	tokenB, idB := ts.SignupAndLogin(t, "Bob", "Jones")
	tokenC, idC := ts.SignupAndLogin(t, "Carol", "Brown")

	// A is friends with both B and C.
	befriend(t, ts, tokenA, idA, tokenB, idB)
	befriend(t, ts, tokenA, idA, tokenC, idC)

	resp := ts.Get(t, "/api/analytics/sociable?min=2", tokenA)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var result struct {
		Users []map[string]interface{} `json:"users"`
	}
	ReadJSON(t, resp, &result)
	require.Len(t, result.Users, 1)
	assert.Equal(t, idA, result.Users[0]["id"])

	resp = ts.Get(t, "/api/analytics/sociable?min=1", tokenA)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ReadJSON(t, resp, &result)
	assert.Len(t, result.Users, 3)
}
