package client

import (
	"context"
	"encoding/json"
	"net/http"
	neturl "net/url"
	"strconv"
	"strings"
	"time"

	"boscoin.io/rankchoice/lib/common"
	"boscoin.io/rankchoice/lib/transaction"
)

const (
	UrlPrefixForAPIV1 = "/api/v1"

	UrlTransactions      = "/transactions"
	UrlTransactionByHash = "/transactions/{id}"
	UrlPoll              = "/polls/{id}"
	UrlPollVotes         = "/polls/{id}/votes"
	UrlPollVote          = "/polls/{id}/votes/{address}"
	UrlLatestValue       = "/latest-value"
	UrlEvents            = "/events"
	UrlLatestBlock       = "/blocks/latest"
	UrlBlock             = "/blocks/{height}"
)

const (
	DefaultTimeout     = 10 * time.Second
	DefaultIdleTimeout = 30 * time.Second
	DefaultWatchLimit  = 100
)

// DefaultRetrySetting retries a failed request 5 times, waiting a bit
// longer every time.
var DefaultRetrySetting = &common.RetrySetting{
	MaxRetries:  5,
	Concurrency: 1,
	Backoff: func(retry int) time.Duration {
		return time.Duration(retry) * 200 * time.Millisecond
	},
}

type QueryKey string

func (qk QueryKey) String() string {
	return string(qk)
}

const (
	QueryLimit   QueryKey = "limit"
	QueryReverse QueryKey = "reverse"
	QueryCursor  QueryKey = "cursor"
)

type Q struct {
	Key   QueryKey
	Value string
}

type Queries []Q

func (qs Queries) toQueryString() string {
	if len(qs) == 0 {
		return ""
	}

	urlValues := neturl.Values{}
	for _, q := range qs {
		switch q.Key {
		case QueryLimit, QueryReverse, QueryCursor:
			urlValues.Add(q.Key.String(), q.Value)
		}
	}
	return "?" + urlValues.Encode()
}

// Client talks to the HTTP API of a node. `URL` is the node endpoint
// without the api prefix, like "https://127.0.0.1:12345".
type Client struct {
	URL string

	HTTP *common.HTTP2Client
}

// NewClient makes a client for `url`; with `retry` a request failing by
// network error or by a 5xx status is sent again.
func NewClient(url string, retry *common.RetrySetting) (*Client, error) {
	h, err := common.NewPersistentHTTP2Client(DefaultTimeout, DefaultIdleTimeout, true, retry)
	if err != nil {
		return nil, err
	}

	return &Client{
		URL:  strings.TrimRight(url, "/"),
		HTTP: h,
	}, nil
}

func (c *Client) Close() {
	c.HTTP.Close()
}

func (c *Client) toResponse(resp *http.Response, response interface{}) (err error) {
	defer resp.Body.Close()
	decoder := json.NewDecoder(resp.Body)

	if !(resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices) {
		var p Problem
		if err = decoder.Decode(&p); err != nil {
			return
		}
		return Error{Problem: p}
	}

	return decoder.Decode(response)
}

func (c *Client) Get(path string, headers http.Header) (*http.Response, error) {
	return c.HTTP.Get(c.URL+UrlPrefixForAPIV1+path, headers)
}

func (c *Client) Post(path string, body []byte, headers http.Header) (*http.Response, error) {
	return c.HTTP.Post(c.URL+UrlPrefixForAPIV1+path, body, headers)
}

func (c *Client) load(path string, response interface{}) error {
	headers := http.Header{}
	headers.Set("Accept", "application/json")

	resp, err := c.Get(path, headers)
	if err != nil {
		return err
	}

	return c.toResponse(resp, response)
}

func (c *Client) LoadPoll(id uint64) (p Poll, err error) {
	url := strings.Replace(UrlPoll, "{id}", strconv.FormatUint(id, 10), -1)
	err = c.load(url, &p)
	return
}

func (c *Client) LoadPollVote(id uint64, voter string) (b Ballot, err error) {
	url := strings.Replace(UrlPollVote, "{id}", strconv.FormatUint(id, 10), -1)
	url = strings.Replace(url, "{address}", voter, -1)
	err = c.load(url, &b)
	return
}

func (c *Client) LoadPollVotes(id uint64, queries ...Q) (page BallotsPage, err error) {
	url := strings.Replace(UrlPollVotes, "{id}", strconv.FormatUint(id, 10), -1)
	url += Queries(queries).toQueryString()
	err = c.load(url, &page)
	return
}

func (c *Client) LoadLatestValue() (v LatestValue, err error) {
	err = c.load(UrlLatestValue, &v)
	return
}

func (c *Client) LoadEvents(queries ...Q) (page EventsPage, err error) {
	err = c.load(UrlEvents+Queries(queries).toQueryString(), &page)
	return
}

func (c *Client) LoadTransaction(hash string) (t Transaction, err error) {
	err = c.load(strings.Replace(UrlTransactionByHash, "{id}", hash, -1), &t)
	return
}

func (c *Client) LoadLatestBlock() (b Block, err error) {
	err = c.load(UrlLatestBlock, &b)
	return
}

func (c *Client) LoadBlock(height uint64) (b Block, err error) {
	err = c.load(strings.Replace(UrlBlock, "{height}", strconv.FormatUint(height, 10), -1), &b)
	return
}

// SubmitTransaction posts a signed transaction. The returned record has
// status "submitted"; the receipt is loaded later with `LoadTransaction`.
func (c *Client) SubmitTransaction(tx transaction.Transaction) (t Transaction, err error) {
	var body []byte
	if body, err = tx.Serialize(); err != nil {
		return
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")

	var resp *http.Response
	if resp, err = c.Post(UrlTransactions, body, headers); err != nil {
		return
	}

	err = c.toResponse(resp, &t)
	return
}

// WatchEvents pages through the event log from `cursor`, calling `handler`
// for every event in order, and polls again every `interval` once it
// reaches the end. It returns when `ctx` is done, or when `handler` or a
// request fails; a client made with a `common.RetrySetting` retries the
// request before giving up.
func (c *Client) WatchEvents(ctx context.Context, cursor uint64, interval time.Duration, handler func(Event) error) error {
	for {
		page, err := c.LoadEvents(
			Q{Key: QueryCursor, Value: strconv.FormatUint(cursor, 10)},
			Q{Key: QueryLimit, Value: strconv.Itoa(DefaultWatchLimit)},
		)
		if err != nil {
			return err
		}

		for _, e := range page.Embedded.Records {
			if e.Seq < cursor {
				continue
			}
			if err := handler(e); err != nil {
				return err
			}
			cursor = e.Seq + 1
		}

		if len(page.Embedded.Records) > 0 && len(page.Embedded.Records) == DefaultWatchLimit {
			continue
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(interval):
		}
	}
}
