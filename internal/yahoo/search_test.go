package yahoo_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	yahoo "stockmcp/internal/yahoo"
)

func TestSearch(t *testing.T) {
	t.Parallel()

	// Arrange: a mix of well-formed and malformed candidates
	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Contains(t, req.URL.Path, "/v1/finance/search")
			require.Equal(t, "aap", req.URL.Query().Get("q"))
			return okBody(t, `{"quotes":[
				{"symbol":"AAPL","shortname":"Apple Inc.","exchange":"NMS","quoteType":"EQUITY","score":207459},
				{"shortname":"No symbol here"},
				{"symbol":12345},
				{"symbol":"AAP","shortname":"Advance Auto Parts"}
			]}`), nil
		}).
		Times(1)

	client := yahoo.NewClient(yahoo.WithHTTPClient(httpClient))

	// Act
	matches, err := client.Search(t.Context(), "aap")
	require.NoError(t, err)

	// Assert: malformed candidates are skipped, order preserved
	require.Len(t, matches, 2)
	require.Equal(t, "AAPL", matches[0].Symbol)
	require.Equal(t, "Apple Inc.", matches[0].ShortName)
	require.NotNil(t, matches[0].Score)
	require.Equal(t, "AAP", matches[1].Symbol)
}

func TestSearch_NoMatches(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			return okBody(t, `{"quotes":[]}`), nil
		}).
		Times(1)

	client := yahoo.NewClient(yahoo.WithHTTPClient(httpClient))

	matches, err := client.Search(t.Context(), "nosuchthing")
	require.NoError(t, err)
	require.Empty(t, matches)
}
