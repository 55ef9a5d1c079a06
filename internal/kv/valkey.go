package kv

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/julianstephens/pado/internal/constants"
)

const defaultValkeyTimeout = 2 * time.Second

// Valkey stores each key as a plain string under the pado: namespace
type Valkey struct {
	opt      valkey.ClientOption
	location string
	timeout  time.Duration
	client   valkey.Client
}

// NewValkey accepts valkey:// or redis:// URLs. The password argument wins
// over anything in the URL.
func NewValkey(rawURL, password string, timeout time.Duration) (*Valkey, error) {
	addr := rawURL
	if rest, ok := strings.CutPrefix(addr, "valkey://"); ok {
		addr = "redis://" + rest
	}

	opt, err := valkey.ParseURL(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid valkey address: %w", err)
	}
	if password != "" {
		opt.Password = password
	}
	opt.DisableCache = true

	if timeout <= 0 {
		timeout = defaultValkeyTimeout
	}

	return &Valkey{
		opt:      opt,
		location: "valkey://" + strings.Join(opt.InitAddress, ","),
		timeout:  timeout,
	}, nil
}

// Init only checks connectivity; there is no schema to create
func (v *Valkey) Init() error {
	return v.Load()
}

func (v *Valkey) Load() error {
	if v.client != nil {
		return nil
	}

	client, err := valkey.NewClient(v.opt)
	if err != nil {
		return fmt.Errorf("failed to create valkey client: %w", err)
	}

	ctx, cancel := v.ctx()
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return fmt.Errorf("failed to connect to valkey: %w", err)
	}

	v.client = client
	return nil
}

func (v *Valkey) Close() error {
	if v.client != nil {
		v.client.Close()
		v.client = nil
	}
	return nil
}

func (v *Valkey) Location() string { return v.location }

func (v *Valkey) Get(key string) (string, bool, error) {
	if v.client == nil {
		return "", false, ErrNotInitialized
	}
	ctx, cancel := v.ctx()
	defer cancel()

	value, err := v.client.Do(ctx, v.client.B().Get().Key(namespaced(key)).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (v *Valkey) Set(key, value string) error {
	if v.client == nil {
		return ErrNotInitialized
	}
	ctx, cancel := v.ctx()
	defer cancel()
	return v.client.Do(ctx, v.client.B().Set().Key(namespaced(key)).Value(value).Build()).Error()
}

func (v *Valkey) Remove(key string) error {
	if v.client == nil {
		return ErrNotInitialized
	}
	ctx, cancel := v.ctx()
	defer cancel()
	return v.client.Do(ctx, v.client.B().Del().Key(namespaced(key)).Build()).Error()
}

func (v *Valkey) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), v.timeout)
}

func namespaced(key string) string {
	return constants.KeyNamespace + key
}
