package queue

import (
    "context"
    "errors"
    "fmt"
    "log"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "github.com/redis/go-redis/v9"
)

// StartCacheInvalidator connects to RabbitMQ, binds an exclusive queue
// to the restaurant-updates fanout exchange and drops cached responses
// whenever a change event arrives, so the next floor or dashboard read
// reflects the new state immediately instead of waiting out the TTL.
// The function runs a reconnect loop with backoff and returns only when
// the context is cancelled; processing errors are logged and the
// offending message is rejected so the loop keeps running.
func StartCacheInvalidator(ctx context.Context, url string, rdb *redis.Client, prefix string) {
    if url == "" {
        url = DefaultAMQPURL
    }
    backoff := time.Second
    for {
        if ctx.Err() != nil {
            return
        }
        conn, err := amqp.Dial(url)
        if err != nil {
            log.Printf("cache-invalidator: failed to dial broker: %v; retrying in %s", err, backoff)
            select {
            case <-ctx.Done():
                return
            case <-time.After(backoff):
            }
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second // reset after successful connect

        err = invalidateLoop(ctx, conn, rdb, prefix)
        _ = conn.Close()
        if err == nil {
            return // context cancelled
        }
        log.Printf("cache-invalidator: consume loop ended: %v; reconnecting", err)
        select {
        case <-ctx.Done():
            return
        case <-time.After(2 * time.Second):
        }
    }
}

func invalidateLoop(ctx context.Context, conn *amqp.Connection, rdb *redis.Client, prefix string) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.ExchangeDeclare(ExchangeName, "fanout", true, false, false, false, nil); err != nil {
        return fmt.Errorf("exchange declare: %w", err)
    }
    // Exclusive auto-delete queue: each running instance gets its own
    // copy of every broadcast and the queue disappears with it.
    q, err := ch.QueueDeclare("", false, true, true, false, nil)
    if err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }
    if err := ch.QueueBind(q.Name, "", ExchangeName, false, nil); err != nil {
        return fmt.Errorf("queue bind: %w", err)
    }
    msgs, err := ch.Consume(q.Name, "", false, true, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for {
        select {
        case <-ctx.Done():
            return nil
        case d, ok := <-msgs:
            if !ok {
                return errors.New("deliveries channel closed")
            }
            if err := dropCachedResponses(ctx, rdb, prefix); err != nil {
                log.Printf("cache-invalidator: drop keys failed: %v", err)
                _ = d.Nack(false, false)
                continue
            }
            _ = d.Ack(false)
        }
    }
}

// dropCachedResponses deletes every cached response under the given
// prefix. Both event kinds invalidate everything: the floor snapshot
// and the dashboard each depend on tables, seatings and reservations.
func dropCachedResponses(ctx context.Context, rdb *redis.Client, prefix string) error {
    iter := rdb.Scan(ctx, 0, prefix+":*", 100).Iterator()
    keys := make([]string, 0, 16)
    for iter.Next(ctx) {
        keys = append(keys, iter.Val())
    }
    if err := iter.Err(); err != nil {
        return err
    }
    if len(keys) == 0 {
        return nil
    }
    return rdb.Del(ctx, keys...).Err()
}
