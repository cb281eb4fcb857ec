package tradier

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
)

func GET_QUOTES(Symbol, Start, End, Interval, Token string) (*QuoteHistory, error) {
	apiURL := fmt.Sprintf("https://api.tradier.com/v1/markets/history?symbol=%s&interval=%s&start=%s&end=%s&session_filter=all", Symbol, Interval, Start, End)

	u, err := url.ParseRequestURI(apiURL)
	if err != nil {
		return nil, fmt.Errorf("failed to build history url: %s", err)
	}

	client := &http.Client{}
	r, err := http.NewRequest("GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build history request: %s", err)
	}
	r.Header.Add("Authorization", fmt.Sprintf("Bearer %s", Token))
	r.Header.Add("Accept", "application/json")

	resp, err := client.Do(r)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quote history: %s", err)
	}
	defer resp.Body.Close()

	responseData, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response data: %s", err)
	}

	quoteHistory := &QuoteHistory{}
	err = json.Unmarshal(responseData, quoteHistory)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal response data: %s", err.Error())
	}

	return quoteHistory, nil
}
