package app

import (
	"fmt"
	"os"

	"github.com/redis/rueidis"
	"github.com/shihabsss1/portfolio/utils"
)

func NewCache() (rueidis.Client, error) {
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress: []string{utils.RedisAddress()},
		Password:    os.Getenv("REDIS_PASS"),
		SelectDB:    0,
	})
	if err != nil {
		return nil, fmt.Errorf("Could not connect to Redis: %w", err)
	}

	return client, nil
}
