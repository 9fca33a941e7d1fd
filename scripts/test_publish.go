// +build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type PlanQueuedEvent struct {
	RequestID    uuid.UUID `json:"request_id"`
	ProjectID    uuid.UUID `json:"project_id"`
	Threads      int       `json:"threads,omitempty"`
	WithGeometry bool      `json:"with_geometry"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	projectID := flag.String("project", "", "Project ID to optimize (random if empty)")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	pid := uuid.New()
	if *projectID != "" {
		parsed, err := uuid.Parse(*projectID)
		if err != nil {
			log.Fatalf("Invalid project ID: %v", err)
		}
		pid = parsed
	}

	event := PlanQueuedEvent{
		RequestID:    uuid.New(),
		ProjectID:    pid,
		Threads:      4,
		WithGeometry: true,
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: "stream:plan:queue",
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("✅ Event published successfully!\n")
	fmt.Printf("   Stream: stream:plan:queue\n")
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Request ID: %s\n", event.RequestID)
	fmt.Printf("   Project ID: %s\n", event.ProjectID)

	fmt.Printf("\n⏳ Waiting for response in stream:plan:done...\n")

	timeout := time.After(120 * time.Second)
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			fmt.Println("❌ Timeout waiting for response")
			return
		case <-ticker.C:
			results, err := client.XRead(ctx, &redis.XReadArgs{
				Streams: []string{"stream:plan:done", "0"},
				Count:   10,
				Block:   0,
			}).Result()

			if err != nil && err != redis.Nil {
				continue
			}

			for _, stream := range results {
				for _, msg := range stream.Messages {
					dataStr, ok := msg.Values["data"].(string)
					if !ok {
						continue
					}

					var response map[string]interface{}
					if err := json.Unmarshal([]byte(dataStr), &response); err != nil {
						continue
					}

					if reqID, ok := response["request_id"].(string); ok {
						if reqID == event.RequestID.String() {
							fmt.Printf("\n✅ Response received!\n")
							prettyJSON, _ := json.MarshalIndent(response, "", "  ")
							fmt.Printf("%s\n", prettyJSON)
							return
						}
					}
				}
			}
		}
	}
}
