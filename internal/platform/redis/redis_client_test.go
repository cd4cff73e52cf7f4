package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRedisClient_Unreachable(t *testing.T) {
	t.Parallel()

	// 127.0.0.1:1 は接続を受け付けない
	rdb, err := NewRedisClient(context.Background(), Config{Addr: "127.0.0.1:1"})

	assert.Error(t, err)
	assert.Nil(t, rdb)
}
