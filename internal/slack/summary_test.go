package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GAJENDER439/Low-Quality-Tester/internal/types"
)

func TestBulkSummary(t *testing.T) {
	rows := []types.Row{
		{Input: "good.example", Label: types.LabelGoodSafe, Score: 100},
		{Input: "meh.example", Label: types.LabelSuspicious, Score: 55},
		{Input: "bad.example", Label: types.LabelLowQuality, Score: 25},
		{Input: "gone.example", Label: types.LabelError},
	}

	msg := BulkSummary(rows)

	assert.Equal(t, "Bulk scan finished: 4 sites, 1 low quality, 1 suspicious", msg.Text)
	require.Len(t, msg.Blocks, 4)

	assert.Equal(t, "header", msg.Blocks[0].Type)
	assert.Equal(t, "Bulk scan: 4 sites", msg.Blocks[0].Text.Text)

	require.Len(t, msg.Blocks[1].Fields, 4)
	assert.Equal(t, "*GOOD_SAFE*\n1", msg.Blocks[1].Fields[0].Text)
	assert.Equal(t, "*ERROR*\n1", msg.Blocks[1].Fields[3].Text)

	assert.Equal(t, "divider", msg.Blocks[2].Type)
	assert.Equal(t, "• `meh.example` SUSPICIOUS (55)\n• `bad.example` LOW_QUALITY (25)", msg.Blocks[3].Text.Text)
}

func TestBulkSummary_NothingFlagged(t *testing.T) {
	msg := BulkSummary([]types.Row{{Input: "good.example", Label: types.LabelGoodSafe, Score: 90}})

	assert.Len(t, msg.Blocks, 2)
}

func TestBulkSummary_CapsFlaggedList(t *testing.T) {
	rows := make([]types.Row, 14)
	for i := range rows {
		rows[i] = types.Row{Input: fmt.Sprintf("bad%d.example", i), Label: types.LabelLowQuality}
	}

	msg := BulkSummary(rows)
	require.Len(t, msg.Blocks, 4)

	text := msg.Blocks[3].Text.Text
	assert.Equal(t, maxFlagged+1, strings.Count(text, "\n")+1)
	assert.Contains(t, text, "bad9.example")
	assert.NotContains(t, text, "bad10.example")
	assert.True(t, strings.HasSuffix(text, "…and 4 more"))
}

func TestNotify(t *testing.T) {
	var got Message

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := New(server.URL, WithHTTPClient(server.Client()))
	require.NoError(t, err)

	err = client.Notify(context.Background(), []types.Row{{Input: "bad.example", Label: types.LabelLowQuality, Score: 10}})
	require.NoError(t, err)

	assert.Equal(t, "Bulk scan finished: 1 sites, 1 low quality, 0 suspicious", got.Text)
	assert.Len(t, got.Blocks, 4)
}
