package common

import (
	"bytes"
	"net"
	"net/http"
	"time"

	"github.com/sethgrid/pester"
	"golang.org/x/net/http2"
)

type HttpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type BackoffStrategy = pester.BackoffStrategy

// RetrySetting makes the client retry a request which fails by network
// error or by a 5xx status.
type RetrySetting struct {
	MaxRetries  int
	Concurrency int
	Backoff     BackoffStrategy
}

type HTTP2Client struct {
	doer      HttpDoer
	client    http.Client
	transport *http.Transport
}

func NewHTTP2Client(timeout, idleTimeout time.Duration, keepAlive bool) (client *HTTP2Client, err error) {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		IdleConnTimeout:     idleTimeout,
		TLSHandshakeTimeout: 5 * time.Second,
		DisableKeepAlives:   !keepAlive,
		DialContext: (&net.Dialer{
			Timeout:   3 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}

	if err = http2.ConfigureTransport(transport); err != nil {
		return
	}

	client = &HTTP2Client{
		client: http.Client{
			Transport: transport,
			Timeout:   timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		transport: transport,
	}
	client.doer = &client.client

	return
}

// NewPersistentHTTP2Client is `NewHTTP2Client` which retries by
// `retrySetting`; a nil setting never retries.
func NewPersistentHTTP2Client(timeout, idleTimeout time.Duration, keepAlive bool, retrySetting *RetrySetting) (client *HTTP2Client, err error) {
	if client, err = NewHTTP2Client(timeout, idleTimeout, keepAlive); err != nil {
		return nil, err
	}

	if retrySetting != nil {
		ec := pester.NewExtendedClient(&client.client)
		ec.MaxRetries = retrySetting.MaxRetries
		ec.Concurrency = retrySetting.Concurrency
		ec.Backoff = retrySetting.Backoff
		client.doer = ec
	}

	return
}

func (c *HTTP2Client) Close() {
	c.transport.CloseIdleConnections()
}

func (c *HTTP2Client) Get(url string, headers http.Header) (*http.Response, error) {
	request, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	request.Header = headers

	return c.Do(request)
}

func (c *HTTP2Client) Post(url string, b []byte, headers http.Header) (*http.Response, error) {
	request, err := http.NewRequest("POST", url, bytes.NewBuffer(b))
	if err != nil {
		return nil, err
	}
	request.Header = headers

	return c.Do(request)
}

// Do has the same interface as `http.Client.Do`.
func (c *HTTP2Client) Do(req *http.Request) (*http.Response, error) {
	return c.doer.Do(req)
}
