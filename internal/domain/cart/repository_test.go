package cart

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stephenombuya/Velixa/internal/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryHook answers GET and SET from a map so no Redis server is dialed
type memoryHook struct {
	values map[string]string
	sets   [][]interface{}
	err    error
}

func (h *memoryHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return nil, errors.New("dial disabled")
	}
}

func (h *memoryHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		if h.err != nil {
			cmd.SetErr(h.err)
			return h.err
		}

		args := cmd.Args()
		switch c := cmd.(type) {
		case *redis.StringCmd:
			value, ok := h.values[fmt.Sprint(args[1])]
			if !ok {
				c.SetErr(redis.Nil)
				return redis.Nil
			}
			c.SetVal(value)
		case *redis.StatusCmd:
			h.sets = append(h.sets, args)
			h.values[fmt.Sprint(args[1])] = string(args[2].([]byte))
			c.SetVal("OK")
		default:
			err := fmt.Errorf("unexpected command %s", cmd.Name())
			cmd.SetErr(err)
			return err
		}
		return nil
	}
}

func (h *memoryHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func newHookedClient(t *testing.T) (*redis.Client, *memoryHook) {
	t.Helper()
	hook := &memoryHook{values: make(map[string]string)}
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	client.AddHook(hook)
	t.Cleanup(func() { _ = client.Close() })
	return client, hook
}

func TestRedisRepositoryRoundTrip(t *testing.T) {
	client, hook := newHookedClient(t)
	repo := NewRedisRepository(client, 24*time.Hour)
	ctx := context.Background()

	cart := NewCart("u1", time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	cart.Items = []CartItem{item("p1", "19.99", 3)}
	cart.Recalculate(cart.CreatedAt)
	require.NoError(t, repo.Save(ctx, cart))

	require.Len(t, hook.sets, 1)
	assert.Equal(t, "cart:user:u1", hook.sets[0][1])
	assert.Equal(t, []interface{}{"ex", int64(86400)}, hook.sets[0][3:])

	loaded, err := repo.FindByUserID(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, 3, loaded.Items[0].Quantity)
	assert.True(t, decimal.RequireFromString("59.97").Equal(loaded.TotalPrice))
	assert.True(t, cart.UpdatedAt.Equal(loaded.UpdatedAt))
}

func TestRedisRepositoryWithoutTTLKeepsCart(t *testing.T) {
	client, hook := newHookedClient(t)

	require.NoError(t, NewRedisRepository(client, 0).Save(context.Background(), NewCart("u1", time.Now())))

	require.Len(t, hook.sets, 1)
	assert.Len(t, hook.sets[0], 3)
}

func TestRedisRepositoryErrors(t *testing.T) {
	client, hook := newHookedClient(t)
	repo := NewRedisRepository(client, time.Hour)
	ctx := context.Background()

	_, err := repo.FindByUserID(ctx, "missing")
	assert.ErrorIs(t, err, apperror.ErrRecordNotFound)

	hook.values[cartKey("broken")] = "{not json"
	_, err = repo.FindByUserID(ctx, "broken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperror.ErrRecordNotFound)

	hook.err = errors.New("connection reset")
	_, err = repo.FindByUserID(ctx, "u1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperror.ErrRecordNotFound)
	assert.Error(t, repo.Save(ctx, NewCart("u1", time.Now())))
}

func TestRedisRepositoryAgainstRedis(t *testing.T) {
	addr := os.Getenv("VELIXA_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("VELIXA_TEST_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()
	ctx := context.Background()
	require.NoError(t, client.Del(ctx, cartKey("it-user")).Err())

	repo := NewRedisRepository(client, time.Minute)
	cart := NewCart("it-user", time.Now().UTC())
	cart.Items = []CartItem{item("p1", "2.50", 2)}
	cart.Recalculate(time.Now().UTC())
	require.NoError(t, repo.Save(ctx, cart))

	ttl, err := client.TTL(ctx, cartKey("it-user")).Result()
	require.NoError(t, err)
	assert.InDelta(t, time.Minute.Seconds(), ttl.Seconds(), 5)

	loaded, err := repo.FindByUserID(ctx, "it-user")
	require.NoError(t, err)
	assert.Equal(t, "5.00", loaded.TotalPrice.StringFixed(2))
}
