package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionBody(content string) string {
	reply, _ := json.Marshal(content)
	return fmt.Sprintf(`{"choices":[{"message":{"role":"assistant","content":%s}}]}`, reply)
}

func TestClientTranslate(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		fmt.Fprint(w, completionBody("```json\n{\"action\":\"list\",\"source_path\":\"Downloads\"}\n```"))
	}))
	defer server.Close()

	client := NewClient("test-model", server.URL, "sk-test")

	cmd, err := client.Translate(context.Background(), "show me my downloads")
	require.NoError(t, err)
	assert.Equal(t, Command{Action: ActionList, SourcePath: "Downloads"}, cmd)

	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "test-model", gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "show me my downloads", gotReq.Messages[1].Content)
}

func TestClientKeepsConversationHistory(t *testing.T) {
	var lastLen int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		lastLen = len(req.Messages)
		fmt.Fprint(w, completionBody(`{"action":"find","file_type":"pdf"}`))
	}))
	defer server.Close()

	client := NewClient("m", server.URL, "")

	_, err := client.Translate(context.Background(), "find pdfs")
	require.NoError(t, err)
	assert.Equal(t, 2, lastLen)

	_, err = client.Translate(context.Background(), "and in documents?")
	require.NoError(t, err)
	// system + first exchange (user, assistant) + new user message
	assert.Equal(t, 4, lastLen)
}

func TestClientFailedParseNotAppendedToHistory(t *testing.T) {
	replies := []string{"no json here at all", completionBody(`{"action":"list"}`)}
	call := 0
	var lastLen int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		lastLen = len(req.Messages)
		if replies[call] == "no json here at all" {
			fmt.Fprint(w, completionBody(replies[call]))
		} else {
			fmt.Fprint(w, replies[call])
		}
		call++
	}))
	defer server.Close()

	client := NewClient("m", server.URL, "")

	_, err := client.Translate(context.Background(), "gibberish")
	assert.Error(t, err)

	_, err = client.Translate(context.Background(), "list my files")
	require.NoError(t, err)
	assert.Equal(t, 2, lastLen, "failed exchanges are not kept in history")
}

func TestClientServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient("m", server.URL, "")
	_, err := client.Translate(context.Background(), "anything")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestClientNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer server.Close()

	client := NewClient("m", server.URL, "")
	_, err := client.Translate(context.Background(), "anything")
	assert.Error(t, err)
}
