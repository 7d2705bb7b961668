package fetch

import (
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
)

// fetchDocument downloads and parses one HTML page, retrying transient
// failures with exponential backoff. The scraped sites rate-limit bursts,
// so retries start slow and give up after half a minute.
func fetchDocument(client *http.Client, userAgent, url string) (*goquery.Document, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 2 * time.Second
	b.MaxElapsedTime = 30 * time.Second

	return backoff.RetryNotifyWithData(
		func() (*goquery.Document, error) {
			req, err := http.NewRequest(http.MethodGet, url, nil)
			if err != nil {
				return nil, backoff.Permanent(err)
			}
			req.Header.Set("User-Agent", userAgent)
			resp, err := client.Do(req)
			if err != nil {
				return nil, err
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
			}
			return goquery.NewDocumentFromReader(resp.Body)
		},
		b,
		func(err error, d time.Duration) {
			log.Warn().Err(err).Dur("retryIn", d).Str("url", url).Msg("Fetch failed, backing off")
		},
	)
}
