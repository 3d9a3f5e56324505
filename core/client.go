package core

import (
	"context"
	"encoding/json"
	"time"

	log "github.com/sirupsen/logrus"
)

var coreLog = log.New()

// SetLogger replaces the package logger; the default writes to stderr at
// logrus defaults.
func SetLogger(l *log.Logger) { coreLog = l }

// DefaultNodes are the public mainnet API endpoints used when the caller
// does not supply a ring.
var DefaultNodes = []string{
	"https://api.hive.blog",
	"https://api.openhive.network",
}

// Options configure a Client. The zero value is not usable; start from
// DefaultOptions.
type Options struct {
	// Timeout applies per node request; a full call may take up to
	// len(nodes)·Timeout plus backoff sleeps before ErrAllNodesFailed.
	Timeout time.Duration

	// FailoverThreshold is the number of transport failures a node absorbs
	// before the sticky index advances past it. Clamped to at least 1.
	FailoverThreshold uint32

	// AddressPrefix is used when rendering recovered or derived keys.
	AddressPrefix string

	// ChainID domain-separates signing digests.
	ChainID ChainID

	// Backoff paces retries between nodes.
	Backoff Backoff
}

// DefaultOptions returns the mainnet defaults.
func DefaultOptions() Options {
	return Options{
		Timeout:           10 * time.Second,
		FailoverThreshold: 3,
		AddressPrefix:     DefaultAddressPrefix,
		ChainID:           MainnetChainID(),
		Backoff:           DefaultBackoff(),
	}
}

// TestnetOptions returns DefaultOptions rebound to the public testnet.
func TestnetOptions() Options {
	options := DefaultOptions()
	options.ChainID = TestnetChainID()
	return options
}

// Client is the top-level handle: a failover transport plus one namespace
// per node API.
type Client struct {
	transport *FailoverTransport
	options   Options

	Database          *DatabaseAPI
	Broadcast         *BroadcastAPI
	Blockchain        *Blockchain
	Hivemind          *HivemindAPI
	RC                *RCAPI
	Keys              *AccountByKeyAPI
	TransactionStatus *TransactionStatusAPI
}

// NewClient builds a client over the given node URLs. An empty node list is
// a programmer error and panics.
func NewClient(nodes []string, options Options) *Client {
	if len(nodes) == 0 {
		panic("hivenet: at least one node URL is required")
	}

	transport, err := NewFailoverTransport(nodes, options.Timeout, options.FailoverThreshold, options.Backoff)
	if err != nil {
		panic("hivenet: " + err.Error())
	}

	client := &Client{transport: transport, options: options}
	client.Database = &DatabaseAPI{client: client}
	client.Broadcast = &BroadcastAPI{client: client}
	client.Blockchain = &Blockchain{client: client}
	client.Hivemind = &HivemindAPI{client: client}
	client.RC = &RCAPI{client: client}
	client.Keys = &AccountByKeyAPI{client: client}
	client.TransactionStatus = &TransactionStatusAPI{client: client}
	return client
}

// NewDefaultClient connects to the public mainnet endpoints.
func NewDefaultClient() *Client {
	return NewClient(DefaultNodes, DefaultOptions())
}

// Options returns the client's configuration.
func (c *Client) Options() Options { return c.options }

// Transport exposes the underlying failover state for observability.
func (c *Client) Transport() *FailoverTransport { return c.transport }

// Call posts a raw JSON-RPC request and returns the undecoded result.
func (c *Client) Call(ctx context.Context, api, method string, params any) (json.RawMessage, error) {
	return c.transport.Call(ctx, api, method, params)
}

// callInto posts a request and decodes the result into out (skipped when out
// is nil).
func (c *Client) callInto(ctx context.Context, api, method string, params, out any) error {
	result, err := c.transport.Call(ctx, api, method, params)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(result, out); err != nil {
		return serializationErrorf("decoding %s.%s result: %v", api, method, err)
	}
	return nil
}
