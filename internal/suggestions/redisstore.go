package suggestions

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"carta/internal/errx"
	"carta/internal/selection"
)

type RedisOptions struct {
	URL          string
	Prefix       string
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// RedisStore keeps each suggestion as a SET of ids under Prefix+name.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	ropts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, err
	}
	ropts.DialTimeout = durationOr(opts.DialTimeout, 5*time.Second)
	ropts.ReadTimeout = durationOr(opts.ReadTimeout, 3*time.Second)
	ropts.WriteTimeout = durationOr(opts.WriteTimeout, 3*time.Second)

	client := redis.NewClient(ropts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &RedisStore{client: client, prefix: opts.Prefix}, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) key(name string) string {
	return s.prefix + name
}

func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	out := []string{}
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		out = append(out, strings.TrimPrefix(iter.Val(), s.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}

func (s *RedisStore) Read(ctx context.Context, name string) (selection.Set, bool, error) {
	n, err := s.client.Exists(ctx, s.key(name)).Result()
	if err != nil {
		return nil, false, err
	}
	if n == 0 {
		return selection.Set{}, false, nil
	}

	members, err := s.client.SMembers(ctx, s.key(name)).Result()
	if err != nil {
		return nil, false, err
	}
	return selection.ParseSet(strings.Join(members, ",")), true, nil
}

// Write replaces the stored set in one MULTI block.
func (s *RedisStore) Write(ctx context.Context, name string, ids selection.Set) error {
	members := make([]any, 0, len(ids))
	for _, id := range ids.Sorted() {
		members = append(members, strconv.Itoa(id))
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key(name))
		if len(members) > 0 {
			pipe.SAdd(ctx, s.key(name), members...)
		}
		return nil
	})
	return err
}

func (s *RedisStore) Delete(ctx context.Context, name string) error {
	n, err := s.client.Del(ctx, s.key(name)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return errx.NotFound("suggestion %q not found", name)
	}
	return nil
}

func durationOr(v, fallback time.Duration) time.Duration {
	if v <= 0 {
		return fallback
	}
	return v
}
